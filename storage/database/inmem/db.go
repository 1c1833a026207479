package inmemdb

import (
	"sync"

	"github.com/trezcool/masomo/core/school"
)

type (
	DB struct {
		mutex    sync.RWMutex
		students map[string]school.StudentRecord
		teachers map[string]school.TeacherRecord
		feedback []school.Feedback // insertion order
		pkCount  int64
	}
)

func Open() *DB {
	return &DB{
		students: make(map[string]school.StudentRecord),
		teachers: make(map[string]school.TeacherRecord),
	}
}
