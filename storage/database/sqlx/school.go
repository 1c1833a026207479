package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

const (
	upsertStudentQuery = `INSERT INTO students (id, name, age, phone, grade, class)
VALUES (:id, :name, :age, :phone, :grade, :class)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name, age = excluded.age, phone = excluded.phone,
    grade = excluded.grade, class = excluded.class`

	upsertTeacherQuery = `INSERT INTO teachers (id, name, age, phone, subject, salary)
VALUES (:id, :name, :age, :phone, :subject, :salary)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name, age = excluded.age, phone = excluded.phone,
    subject = excluded.subject, salary = excluded.salary`

	insertGradeQuery    = `INSERT INTO student_grades (student_id, subject, score) VALUES (:student_id, :subject, :score)`
	insertClassQuery    = `INSERT INTO teacher_classes (teacher_id, label, position) VALUES (:teacher_id, :label, :position)`
	insertFeedbackQuery = `INSERT INTO feedback (person_id, role, comment) VALUES (?, ?, ?) RETURNING id`
)

type (
	studentRow struct {
		ID         string      `db:"id"`
		Name       string      `db:"name"`
		Age        int         `db:"age"`
		Phone      null.String `db:"phone"`
		GradeLevel int         `db:"grade"`
		Class      null.String `db:"class"`
	}

	gradeRow struct {
		StudentID string  `db:"student_id"`
		Subject   string  `db:"subject"`
		Score     float64 `db:"score"`
	}

	teacherRow struct {
		ID      string      `db:"id"`
		Name    string      `db:"name"`
		Age     int         `db:"age"`
		Phone   null.String `db:"phone"`
		Subject null.String `db:"subject"`
		Salary  float64     `db:"salary"`
	}

	classRow struct {
		TeacherID string `db:"teacher_id"`
		Label     string `db:"label"`
		Position  int    `db:"position"`
	}

	feedbackRow struct {
		ID       int64       `db:"id"`
		PersonID string      `db:"person_id"`
		Role     string      `db:"role"`
		Comment  null.String `db:"comment"`
	}
)

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Storage = (*schoolRepository)(nil)

// NewSchoolRepository stores school records in an already migrated sqlite or postgres database.
func NewSchoolRepository(db *sqlx.DB) school.Storage {
	return &schoolRepository{db: db}
}

// inTx runs fn in a transaction, rolling it back when fn fails.
func (repo *schoolRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (repo *schoolRepository) UpsertStudent(ctx context.Context, rec school.StudentRecord) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		row := studentRow{
			ID:         rec.ID,
			Name:       rec.Name,
			Age:        rec.Age,
			Phone:      nullString(rec.Phone),
			GradeLevel: rec.GradeLevel,
			Class:      nullString(rec.Class),
		}
		if _, err := tx.NamedExecContext(ctx, upsertStudentQuery, row); err != nil {
			return errors.Wrap(err, "upserting student")
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM student_grades WHERE student_id = ?`), rec.ID); err != nil {
			return errors.Wrap(err, "clearing grades")
		}
		for subject, score := range rec.Grades {
			g := gradeRow{StudentID: rec.ID, Subject: subject, Score: score}
			if _, err := tx.NamedExecContext(ctx, insertGradeQuery, g); err != nil {
				return errors.Wrapf(err, "inserting %s grade", subject)
			}
		}
		return nil
	})
}

func (repo *schoolRepository) UpsertTeacher(ctx context.Context, rec school.TeacherRecord) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		row := teacherRow{
			ID:      rec.ID,
			Name:    rec.Name,
			Age:     rec.Age,
			Phone:   nullString(rec.Phone),
			Subject: nullString(rec.Subject),
			Salary:  rec.Salary,
		}
		if _, err := tx.NamedExecContext(ctx, upsertTeacherQuery, row); err != nil {
			return errors.Wrap(err, "upserting teacher")
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM teacher_classes WHERE teacher_id = ?`), rec.ID); err != nil {
			return errors.Wrap(err, "clearing classes")
		}
		for i, label := range rec.Classes {
			c := classRow{TeacherID: rec.ID, Label: label, Position: i}
			if _, err := tx.NamedExecContext(ctx, insertClassQuery, c); err != nil {
				return errors.Wrapf(err, "inserting class %s", label)
			}
		}
		return nil
	})
}

func (repo *schoolRepository) InsertFeedback(ctx context.Context, personID string, role person.Role, comment string) (int64, error) {
	var id int64
	q := repo.db.Rebind(insertFeedbackQuery)
	if err := repo.db.QueryRowxContext(ctx, q, personID, role.String(), nullString(comment)).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "inserting feedback")
	}
	return id, nil
}

func (repo *schoolRepository) ListStudents(ctx context.Context) ([]school.StudentRecord, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT id, name, age, phone, grade, class FROM students ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	var grades []gradeRow
	if err := repo.db.SelectContext(ctx, &grades, `SELECT student_id, subject, score FROM student_grades`); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}

	byStudent := make(map[string]map[string]float64, len(rows))
	for _, g := range grades {
		if byStudent[g.StudentID] == nil {
			byStudent[g.StudentID] = make(map[string]float64)
		}
		byStudent[g.StudentID][g.Subject] = g.Score
	}

	recs := make([]school.StudentRecord, 0, len(rows))
	for _, row := range rows {
		rec := school.StudentRecord{
			ID:         row.ID,
			Name:       row.Name,
			Age:        row.Age,
			Phone:      row.Phone.String,
			GradeLevel: row.GradeLevel,
			Class:      row.Class.String,
			Grades:     byStudent[row.ID],
		}
		if rec.Grades == nil {
			rec.Grades = make(map[string]float64)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (repo *schoolRepository) ListTeachers(ctx context.Context) ([]school.TeacherRecord, error) {
	var rows []teacherRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT id, name, age, phone, subject, salary FROM teachers ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting teachers")
	}
	var classes []classRow
	q := `SELECT teacher_id, label, position FROM teacher_classes ORDER BY teacher_id, position`
	if err := repo.db.SelectContext(ctx, &classes, q); err != nil {
		return nil, errors.Wrap(err, "selecting classes")
	}

	byTeacher := make(map[string][]string, len(rows))
	for _, c := range classes {
		byTeacher[c.TeacherID] = append(byTeacher[c.TeacherID], c.Label)
	}

	recs := make([]school.TeacherRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, school.TeacherRecord{
			ID:      row.ID,
			Name:    row.Name,
			Age:     row.Age,
			Phone:   row.Phone.String,
			Subject: row.Subject.String,
			Salary:  row.Salary,
			Classes: byTeacher[row.ID],
		})
	}
	return recs, nil
}

func (repo *schoolRepository) ListFeedback(ctx context.Context) ([]school.Feedback, error) {
	var rows []feedbackRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT id, person_id, role, comment FROM feedback ORDER BY id DESC`); err != nil {
		return nil, errors.Wrap(err, "selecting feedback")
	}

	fbs := make([]school.Feedback, 0, len(rows))
	for _, row := range rows {
		fbs = append(fbs, school.Feedback{
			ID:       row.ID,
			PersonID: row.PersonID,
			Role:     person.Role(row.Role),
			Comment:  row.Comment.String,
		})
	}
	return fbs, nil
}

func (repo *schoolRepository) Close() error {
	return repo.db.Close()
}
