package person

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MinScore     = 0
	MaxScore     = 100
	PassingScore = 50
)

type Student struct {
	profile
	gradeLevel int
	class      string
	grades     map[string]float64 // {subject: score}
}

var _ Person = (*Student)(nil)

func NewStudent(id, name string, age int, phone string, gradeLevel int, class string) *Student {
	return &Student{
		profile:    profile{id: id, name: name, age: age, phone: phone},
		gradeLevel: gradeLevel,
		class:      class,
		grades:     make(map[string]float64),
	}
}

func (s *Student) Role() Role      { return RoleStudent }
func (s *Student) GradeLevel() int { return s.gradeLevel }
func (s *Student) Class() string   { return s.class }
func (s *Student) GradeCount() int { return len(s.grades) }

// Grades returns a copy of the student's scores per subject.
func (s *Student) Grades() map[string]float64 {
	grades := make(map[string]float64, len(s.grades))
	for subject, score := range s.grades {
		grades[subject] = score
	}
	return grades
}

func (s *Student) Grade(subject string) (float64, bool) {
	score, ok := s.grades[subject]
	return score, ok
}

// Subjects returns the graded subjects sorted by name.
func (s *Student) Subjects() []string {
	subjects := make([]string, 0, len(s.grades))
	for subject := range s.grades {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// AddGrade adds or updates the score for a subject.
// Scores outside [0, 100] are rejected and leave any previous score untouched.
func (s *Student) AddGrade(subject string, score float64) bool {
	if !ValidScore(score) {
		return false
	}
	s.grades[subject] = score
	return true
}

// CalculateAverage returns the mean score, or 0 when the student has no grades.
func (s *Student) CalculateAverage() float64 {
	if len(s.grades) == 0 {
		return 0
	}
	var total float64
	for _, score := range s.grades {
		total += score
	}
	return total / float64(len(s.grades))
}

func (s *Student) DisplayInfo() string {
	var b strings.Builder
	s.writeInfo(&b)
	_, _ = fmt.Fprintf(&b, "Grade: %d\n", s.gradeLevel)
	_, _ = fmt.Fprintf(&b, "Class: %s\n", s.class)
	_, _ = fmt.Fprintf(&b, "Average: %.2f", s.CalculateAverage())
	return b.String()
}

// ValidScore checks that a score is within [0, 100].
func ValidScore(score float64) bool {
	return score >= MinScore && score <= MaxScore
}

func IsPassingGrade(score float64) bool {
	return score >= PassingScore
}
