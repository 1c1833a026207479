// Package boltdb stores school records in a single bbolt file.
package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

var (
	studentsBucket = []byte("students")
	teachersBucket = []byte("teachers")
	feedbackBucket = []byte("feedback")
)

type (
	studentDoc struct {
		ID         string             `json:"id"`
		Name       string             `json:"name"`
		Age        int                `json:"age"`
		Phone      string             `json:"phone,omitempty"`
		GradeLevel int                `json:"grade"`
		Class      string             `json:"class,omitempty"`
		Grades     map[string]float64 `json:"grades,omitempty"`
	}

	teacherDoc struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Age     int      `json:"age"`
		Phone   string   `json:"phone,omitempty"`
		Subject string   `json:"subject,omitempty"`
		Salary  float64  `json:"salary"`
		Classes []string `json:"classes,omitempty"`
	}
)

type schoolRepository struct {
	db *bolt.DB
}

var _ school.Storage = (*schoolRepository)(nil)

// Open opens (creating if needed) the bbolt file at path.
func Open(path string) (school.Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating bolt directory")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt file %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{studentsBucket, teachersBucket, feedbackBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return errors.Wrapf(err, "creating bucket %s", name)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &schoolRepository{db: db}, nil
}

func put(tx *bolt.Tx, bucket, key []byte, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding record")
	}
	return tx.Bucket(bucket).Put(key, buf)
}

// seqKey keeps feedback keys sorted by insertion.
func seqKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func (repo *schoolRepository) UpsertStudent(ctx context.Context, rec school.StudentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := studentDoc(rec)
	return repo.db.Update(func(tx *bolt.Tx) error {
		return put(tx, studentsBucket, []byte(rec.ID), doc)
	})
}

func (repo *schoolRepository) UpsertTeacher(ctx context.Context, rec school.TeacherRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := teacherDoc(rec)
	return repo.db.Update(func(tx *bolt.Tx) error {
		return put(tx, teachersBucket, []byte(rec.ID), doc)
	})
}

func (repo *schoolRepository) InsertFeedback(ctx context.Context, personID string, role person.Role, comment string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var id int64
	err := repo.db.Update(func(tx *bolt.Tx) error {
		seq, err := tx.Bucket(feedbackBucket).NextSequence()
		if err != nil {
			return errors.Wrap(err, "next feedback id")
		}
		id = int64(seq)
		fb := school.Feedback{ID: id, PersonID: personID, Role: role, Comment: comment}
		return put(tx, feedbackBucket, seqKey(seq), fb)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *schoolRepository) ListStudents(ctx context.Context) ([]school.StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := make([]school.StudentRecord, 0)
	err := repo.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(studentsBucket).ForEach(func(k, v []byte) error {
			var doc studentDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return errors.Wrapf(err, "decoding student %s", k)
			}
			if doc.Grades == nil {
				doc.Grades = make(map[string]float64)
			}
			recs = append(recs, school.StudentRecord(doc))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (repo *schoolRepository) ListTeachers(ctx context.Context) ([]school.TeacherRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := make([]school.TeacherRecord, 0)
	err := repo.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(teachersBucket).ForEach(func(k, v []byte) error {
			var doc teacherDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return errors.Wrapf(err, "decoding teacher %s", k)
			}
			recs = append(recs, school.TeacherRecord(doc))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (repo *schoolRepository) ListFeedback(ctx context.Context) ([]school.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fbs := make([]school.Feedback, 0)
	err := repo.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(feedbackBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var fb school.Feedback
			if err := json.Unmarshal(v, &fb); err != nil {
				return errors.Wrapf(err, "decoding feedback %d", binary.BigEndian.Uint64(k))
			}
			fbs = append(fbs, fb)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fbs, nil
}

func (repo *schoolRepository) Close() error {
	return repo.db.Close()
}
