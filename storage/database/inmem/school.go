package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Storage = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Storage {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) UpsertStudent(_ context.Context, rec school.StudentRecord) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.students[rec.ID] = rec.Clone()
	return nil
}

func (repo *schoolRepository) UpsertTeacher(_ context.Context, rec school.TeacherRecord) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.teachers[rec.ID] = rec.Clone()
	return nil
}

func (repo *schoolRepository) InsertFeedback(_ context.Context, personID string, role person.Role, comment string) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	repo.db.feedback = append(repo.db.feedback, school.Feedback{
		ID:       repo.db.pkCount,
		PersonID: personID,
		Role:     role,
		Comment:  comment,
	})
	return repo.db.pkCount, nil
}

func (repo *schoolRepository) ListStudents(context.Context) ([]school.StudentRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]school.StudentRecord, 0, len(repo.db.students))
	for _, rec := range repo.db.students {
		recs = append(recs, rec.Clone())
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (repo *schoolRepository) ListTeachers(context.Context) ([]school.TeacherRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]school.TeacherRecord, 0, len(repo.db.teachers))
	for _, rec := range repo.db.teachers {
		recs = append(recs, rec.Clone())
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (repo *schoolRepository) ListFeedback(context.Context) ([]school.Feedback, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	fbs := make([]school.Feedback, 0, len(repo.db.feedback))
	for i := len(repo.db.feedback) - 1; i >= 0; i-- {
		fbs = append(fbs, repo.db.feedback[i])
	}
	return fbs, nil
}

func (repo *schoolRepository) Close() error { return nil }
