// Package school ties students, teachers, grade calculation and reports together.
//
// School is the single entry point for front ends. Lookups of unknown people
// never fail: they produce sentinel values (GPA 0.0, letter "N/A" ...).
// A School is not safe for concurrent use; callers serving many goroutines
// must serialise their calls.
package school

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core/grade"
	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/report"
)

// Sentinels returned for unknown people.
const (
	NoLetterGrade      = "N/A"
	NoStatus           = "N/A"
	StudentNotFoundMsg = "Student not found"
	TeacherNotFoundMsg = "Teacher not found"
)

var (
	// errors
	ErrStudentExists = errors.New("a student with this id already exists")
	ErrTeacherExists = errors.New("a teacher with this id already exists")
)

type (
	Options struct {
		Name       string
		Calculator grade.Rater     // defaults to grade.AdvancedCalculator
		Notifier   report.Notifier // reports cannot be sent without one
		Storage    Storage         // optional; nothing is persisted without one
	}

	// Counters count people created through a School. They are advisory only.
	Counters struct {
		People   int `json:"people"`
		Students int `json:"students"`
		Teachers int `json:"teachers"`
	}

	Stats struct {
		School   string   `json:"school"`
		Students int      `json:"students"`
		Teachers int      `json:"teachers"`
		Created  Counters `json:"created"`
	}

	School struct {
		name     string
		students *StudentManager
		teachers *TeacherManager
		calc     grade.Rater
		reports  *report.Generator
		store    Storage
		counters Counters
	}
)

func New(opts Options) *School {
	calc := opts.Calculator
	if calc == nil {
		calc = grade.NewAdvancedCalculator()
	}
	return &School{
		name:     opts.Name,
		students: NewStudentManager(),
		teachers: NewTeacherManager(),
		calc:     calc,
		reports:  report.NewGenerator(opts.Notifier),
		store:    opts.Storage,
	}
}

func (s *School) Name() string       { return s.name }
func (s *School) Counters() Counters { return s.counters }

// NewStudent creates a student and counts it. The student still has to be added.
func (s *School) NewStudent(id, name string, age int, phone string, gradeLevel int, class string) *person.Student {
	s.count(person.RoleStudent)
	return person.NewStudent(id, name, age, phone, gradeLevel, class)
}

// NewTeacher creates a teacher and counts it. The teacher still has to be added.
func (s *School) NewTeacher(id, name string, age int, phone, subject string, salary float64) *person.Teacher {
	s.count(person.RoleTeacher)
	return person.NewTeacher(id, name, age, phone, subject, salary)
}

func (s *School) count(role person.Role) {
	s.counters.People++
	switch role {
	case person.RoleStudent:
		s.counters.Students++
	case person.RoleTeacher:
		s.counters.Teachers++
	}
}

// Load adds every stored student and teacher that is not already known.
func (s *School) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return errors.Wrap(err, "loading students")
	}
	for _, rec := range students {
		if _, ok := s.students.Get(rec.ID); ok {
			continue
		}
		s.students.Add(rec.Student())
		s.count(person.RoleStudent)
	}

	teachers, err := s.store.ListTeachers(ctx)
	if err != nil {
		return errors.Wrap(err, "loading teachers")
	}
	for _, rec := range teachers {
		if _, ok := s.teachers.Get(rec.ID); ok {
			continue
		}
		s.teachers.Add(rec.Teacher())
		s.count(person.RoleTeacher)
	}
	return nil
}

// Students

// AddStudent adds (and persists) a student. It returns false when the ID is already taken.
func (s *School) AddStudent(ctx context.Context, st *person.Student) (bool, error) {
	if _, ok := s.students.Get(st.ID()); ok {
		return false, nil
	}
	if err := s.saveStudent(ctx, StudentRecordFrom(st)); err != nil {
		return false, err
	}
	return s.students.Add(st), nil
}

func (s *School) GetStudent(id string) (*person.Student, bool) {
	return s.students.Get(id)
}

func (s *School) Students() []*person.Student {
	return s.students.ListAll()
}

// RecordGrade adds or updates a student's score for a subject.
// It returns false for unknown students and scores outside [0, 100].
func (s *School) RecordGrade(ctx context.Context, studentID, subject string, score float64) (bool, error) {
	st, ok := s.students.Get(studentID)
	if !ok || !person.ValidScore(score) {
		return false, nil
	}
	rec := StudentRecordFrom(st)
	rec.Grades[subject] = score
	if err := s.saveStudent(ctx, rec); err != nil {
		return false, err
	}
	return st.AddGrade(subject, score), nil
}

func (s *School) saveStudent(ctx context.Context, rec StudentRecord) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.UpsertStudent(ctx, rec); err != nil {
		return errors.Wrapf(err, "saving student %s", rec.ID)
	}
	return nil
}

// Teachers

// AddTeacher adds (and persists) a teacher. It returns false when the ID is already taken.
func (s *School) AddTeacher(ctx context.Context, t *person.Teacher) (bool, error) {
	if _, ok := s.teachers.Get(t.ID()); ok {
		return false, nil
	}
	if err := s.saveTeacher(ctx, TeacherRecordFrom(t)); err != nil {
		return false, err
	}
	return s.teachers.Add(t), nil
}

func (s *School) GetTeacher(id string) (*person.Teacher, bool) {
	return s.teachers.Get(id)
}

func (s *School) Teachers() []*person.Teacher {
	return s.teachers.ListAll()
}

// AssignClass assigns a class to a teacher. It returns false for unknown teachers and classes already assigned.
func (s *School) AssignClass(ctx context.Context, teacherID, class string) (bool, error) {
	t, ok := s.teachers.Get(teacherID)
	if !ok || t.HasClass(class) {
		return false, nil
	}
	rec := TeacherRecordFrom(t)
	rec.Classes = append(rec.Classes, class)
	if err := s.saveTeacher(ctx, rec); err != nil {
		return false, err
	}
	return t.AddClass(class), nil
}

// UpdateSalary changes a teacher's salary. It returns false for unknown teachers and non-positive salaries.
func (s *School) UpdateSalary(ctx context.Context, teacherID string, salary float64) (bool, error) {
	t, ok := s.teachers.Get(teacherID)
	if !ok || salary <= 0 {
		return false, nil
	}
	rec := TeacherRecordFrom(t)
	rec.Salary = salary
	if err := s.saveTeacher(ctx, rec); err != nil {
		return false, err
	}
	return t.SetSalary(salary), nil
}

func (s *School) saveTeacher(ctx context.Context, rec TeacherRecord) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.UpsertTeacher(ctx, rec); err != nil {
		return errors.Wrapf(err, "saving teacher %s", rec.ID)
	}
	return nil
}

// People returns every student, then every teacher.
func (s *School) People() []person.Person {
	people := make([]person.Person, 0, s.students.Count()+s.teachers.Count())
	for _, st := range s.students.ListAll() {
		people = append(people, st)
	}
	for _, t := range s.teachers.ListAll() {
		people = append(people, t)
	}
	return people
}

// Grades

// CalculateStudentGPA returns the student's GPA, or 0.0 for unknown students.
func (s *School) CalculateStudentGPA(studentID string) float64 {
	if st, ok := s.students.Get(studentID); ok {
		return s.calc.GPA(st.Grades())
	}
	return 0.0
}

// LetterGrade returns the letter grade of the student's average, or "N/A" for unknown students.
func (s *School) LetterGrade(studentID string) string {
	if st, ok := s.students.Get(studentID); ok {
		return s.calc.LetterGrade(st.CalculateAverage())
	}
	return NoLetterGrade
}

// GradeStatus returns the status of the student's average, or "N/A" for unknown students.
func (s *School) GradeStatus(studentID string) string {
	if st, ok := s.students.Get(studentID); ok {
		return s.calc.Status(st.CalculateAverage())
	}
	return NoStatus
}

// Reports

// GenerateReport returns the student's report, or "Student not found".
func (s *School) GenerateReport(studentID string) string {
	if st, ok := s.students.Get(studentID); ok {
		return s.reports.Generate(st)
	}
	return StudentNotFoundMsg
}

// GenerateTeacherReport returns the teacher's report, or "Teacher not found".
func (s *School) GenerateTeacherReport(teacherID string) string {
	if t, ok := s.teachers.Get(teacherID); ok {
		return s.reports.Generate(t)
	}
	return TeacherNotFoundMsg
}

// SendReport generates the student's report and sends it. Unknown students are not notified.
func (s *School) SendReport(studentID string) bool {
	st, ok := s.students.Get(studentID)
	if !ok {
		return false
	}
	return s.reports.Send(s.reports.Generate(st))
}

// Feedback

func (s *School) AddFeedback(ctx context.Context, nf NewFeedback) (Feedback, error) {
	if s.store == nil {
		return Feedback{}, ErrNoStorage
	}
	role := person.Role(nf.Role)
	id, err := s.store.InsertFeedback(ctx, nf.PersonID, role, nf.Comment)
	if err != nil {
		return Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return Feedback{ID: id, PersonID: nf.PersonID, Role: role, Comment: nf.Comment}, nil
}

// Feedback lists stored feedback, most recent first.
func (s *School) Feedback(ctx context.Context) ([]Feedback, error) {
	if s.store == nil {
		return nil, ErrNoStorage
	}
	fbs, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing feedback")
	}
	return fbs, nil
}

// Statistics

func (s *School) Statistics() Stats {
	return Stats{
		School:   s.name,
		Students: s.students.Count(),
		Teachers: s.teachers.Count(),
		Created:  s.counters,
	}
}

func (st Stats) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "\nSchool: %s\n", st.School)
	_, _ = fmt.Fprintf(&b, "Students: %d\n", st.Students)
	_, _ = fmt.Fprintf(&b, "Teachers: %d\n", st.Teachers)
	b.WriteString(strings.Repeat("-", 30))
	return b.String()
}
