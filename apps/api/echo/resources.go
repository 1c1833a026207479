package echoapi

import (
	"cmp"
	"strings"

	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

type (
	studentResource struct {
		ID         string             `json:"id"`
		Name       string             `json:"name"`
		Age        int                `json:"age"`
		Phone      string             `json:"phone"`
		Role       person.Role        `json:"role"`
		GradeLevel int                `json:"grade"`
		Class      string             `json:"class"`
		Grades     map[string]float64 `json:"grades"`
		Average    float64            `json:"average"`
	}

	teacherResource struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Age     int         `json:"age"`
		Phone   string      `json:"phone"`
		Role    person.Role `json:"role"`
		Subject string      `json:"subject"`
		Salary  float64     `json:"salary"`
		Classes []string    `json:"classes"`
	}

	personResource struct {
		ID   string      `json:"id"`
		Name string      `json:"name"`
		Role person.Role `json:"role"`
	}

	summaryResource struct {
		ID      string  `json:"id"`
		Average float64 `json:"average"`
		GPA     float64 `json:"gpa"`
		Letter  string  `json:"letter"`
		Status  string  `json:"status"`
	}

	taxResource struct {
		ID     string  `json:"id"`
		Salary float64 `json:"salary"`
		Tax    float64 `json:"tax"`
	}

	sendResource struct {
		Sent bool `json:"sent"`
	}
)

func newStudentResource(s *person.Student) studentResource {
	return studentResource{
		ID:         s.ID(),
		Name:       s.Name(),
		Age:        s.Age(),
		Phone:      s.Phone(),
		Role:       s.Role(),
		GradeLevel: s.GradeLevel(),
		Class:      s.Class(),
		Grades:     s.Grades(),
		Average:    s.CalculateAverage(),
	}
}

func newTeacherResource(t *person.Teacher) teacherResource {
	return teacherResource{
		ID:      t.ID(),
		Name:    t.Name(),
		Age:     t.Age(),
		Phone:   t.Phone(),
		Role:    t.Role(),
		Subject: t.Subject(),
		Salary:  t.Salary(),
		Classes: t.Classes(),
	}
}

func newPersonResource(p person.Person) personResource {
	return personResource{ID: p.ID(), Name: p.Name(), Role: p.Role()}
}

func newSummaryResource(sch *school.School, id string) summaryResource {
	sum := summaryResource{
		ID:     id,
		GPA:    sch.CalculateStudentGPA(id),
		Letter: sch.LetterGrade(id),
		Status: sch.GradeStatus(id),
	}
	if st, ok := sch.GetStudent(id); ok {
		sum.Average = st.CalculateAverage()
	}
	return sum
}

// orderable fields

var studentFields = map[string]compareFunc[studentResource]{
	"id":      func(a, b studentResource) int { return cmp.Compare(a.ID, b.ID) },
	"name":    func(a, b studentResource) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"age":     func(a, b studentResource) int { return cmp.Compare(a.Age, b.Age) },
	"grade":   func(a, b studentResource) int { return cmp.Compare(a.GradeLevel, b.GradeLevel) },
	"class":   func(a, b studentResource) int { return cmp.Compare(a.Class, b.Class) },
	"average": func(a, b studentResource) int { return cmp.Compare(a.Average, b.Average) },
}

var teacherFields = map[string]compareFunc[teacherResource]{
	"id":      func(a, b teacherResource) int { return cmp.Compare(a.ID, b.ID) },
	"name":    func(a, b teacherResource) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"age":     func(a, b teacherResource) int { return cmp.Compare(a.Age, b.Age) },
	"subject": func(a, b teacherResource) int { return cmp.Compare(a.Subject, b.Subject) },
	"salary":  func(a, b teacherResource) int { return cmp.Compare(a.Salary, b.Salary) },
}
