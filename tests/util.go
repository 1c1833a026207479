package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/report"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/storage/database"
	"github.com/trezcool/masomo/storage/database/inmem"
)

const SchoolName = "Bright Future School"

// PrepareDB opens a migrated sqlite database in a temporary directory.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := core.NewTestConfig()
	conf.Database.Engine = core.EngineSQLite
	conf.Database.Path = filepath.Join(t.TempDir(), "school.db")

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db, conf.Database.Engine); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

// NewSchool returns an empty school backed by an in-memory store.
func NewSchool(t *testing.T, notifier report.Notifier) *school.School {
	t.Helper()
	return school.New(school.Options{
		Name:     SchoolName,
		Notifier: notifier,
		Storage:  inmemdb.NewSchoolRepository(inmemdb.Open()),
	})
}

func CreateStudent(t *testing.T, sch *school.School, id, name string, grades map[string]float64) *person.Student {
	t.Helper()
	ctx := context.Background()

	st := sch.NewStudent(id, name, 15, "0812345670", 10, "10A")
	if ok, err := sch.AddStudent(ctx, st); err != nil || !ok {
		t.Fatalf("createStudent(%s) failed: ok=%v, err=%v", id, ok, err)
	}
	for subject, score := range grades {
		if ok, err := sch.RecordGrade(ctx, id, subject, score); err != nil || !ok {
			t.Fatalf("createStudent(%s) grade %s failed: ok=%v, err=%v", id, subject, ok, err)
		}
	}
	return st
}

func CreateTeacher(t *testing.T, sch *school.School, id, name, subject string, salary float64, classes ...string) *person.Teacher {
	t.Helper()
	ctx := context.Background()

	tc := sch.NewTeacher(id, name, 40, "0811111111", subject, salary)
	if ok, err := sch.AddTeacher(ctx, tc); err != nil || !ok {
		t.Fatalf("createTeacher(%s) failed: ok=%v, err=%v", id, ok, err)
	}
	for _, class := range classes {
		if ok, err := sch.AssignClass(ctx, id, class); err != nil || !ok {
			t.Fatalf("createTeacher(%s) class %s failed: ok=%v, err=%v", id, class, ok, err)
		}
	}
	return tc
}
