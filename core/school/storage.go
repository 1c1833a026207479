package school

import (
	"context"
	"errors"

	"github.com/trezcool/masomo/core/person"
)

var ErrNoStorage = errors.New("school has no storage")

type (
	// Storage persists school records. Every call is its own transaction.
	Storage interface {
		// UpsertStudent inserts or replaces (whole row and grades) the student with the record's ID.
		UpsertStudent(ctx context.Context, rec StudentRecord) error
		// UpsertTeacher inserts or replaces (whole row and classes) the teacher with the record's ID.
		UpsertTeacher(ctx context.Context, rec TeacherRecord) error
		// InsertFeedback stores a comment and returns its auto-incremented ID.
		InsertFeedback(ctx context.Context, personID string, role person.Role, comment string) (int64, error)
		// ListStudents returns every student ordered by ID.
		ListStudents(ctx context.Context) ([]StudentRecord, error)
		// ListTeachers returns every teacher ordered by ID.
		ListTeachers(ctx context.Context) ([]TeacherRecord, error)
		// ListFeedback returns every feedback, most recent first.
		ListFeedback(ctx context.Context) ([]Feedback, error)
		Close() error
	}

	StudentRecord struct {
		ID         string
		Name       string
		Age        int
		Phone      string
		GradeLevel int
		Class      string
		Grades     map[string]float64 // {subject: score}
	}

	TeacherRecord struct {
		ID      string
		Name    string
		Age     int
		Phone   string
		Subject string
		Salary  float64
		Classes []string
	}

	Feedback struct {
		ID       int64       `json:"id"`
		PersonID string      `json:"person_id"`
		Role     person.Role `json:"role"`
		Comment  string      `json:"comment"`
	}
)

func StudentRecordFrom(s *person.Student) StudentRecord {
	return StudentRecord{
		ID:         s.ID(),
		Name:       s.Name(),
		Age:        s.Age(),
		Phone:      s.Phone(),
		GradeLevel: s.GradeLevel(),
		Class:      s.Class(),
		Grades:     s.Grades(),
	}
}

func TeacherRecordFrom(t *person.Teacher) TeacherRecord {
	return TeacherRecord{
		ID:      t.ID(),
		Name:    t.Name(),
		Age:     t.Age(),
		Phone:   t.Phone(),
		Subject: t.Subject(),
		Salary:  t.Salary(),
		Classes: t.Classes(),
	}
}

// Student rebuilds the student. Stored scores outside [0, 100] are dropped.
func (rec StudentRecord) Student() *person.Student {
	s := person.NewStudent(rec.ID, rec.Name, rec.Age, rec.Phone, rec.GradeLevel, rec.Class)
	for subject, score := range rec.Grades {
		s.AddGrade(subject, score)
	}
	return s
}

// Clone returns a copy that shares no map with rec.
func (rec StudentRecord) Clone() StudentRecord {
	grades := make(map[string]float64, len(rec.Grades))
	for subject, score := range rec.Grades {
		grades[subject] = score
	}
	rec.Grades = grades
	return rec
}

func (rec TeacherRecord) Teacher() *person.Teacher {
	t := person.NewTeacher(rec.ID, rec.Name, rec.Age, rec.Phone, rec.Subject, rec.Salary)
	for _, label := range rec.Classes {
		t.AddClass(label)
	}
	return t
}

// Clone returns a copy that shares no slice with rec.
func (rec TeacherRecord) Clone() TeacherRecord {
	classes := make([]string, len(rec.Classes))
	copy(classes, rec.Classes)
	rec.Classes = classes
	return rec
}
