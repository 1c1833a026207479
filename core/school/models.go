package school

import (
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/person"
)

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	ID         string `json:"id" validate:"required,notblank"`
	Name       string `json:"name" validate:"required,notblank"`
	Age        int    `json:"age" validate:"gt=0"`
	Phone      string `json:"phone" validate:"required,phone"`
	GradeLevel int    `json:"grade" validate:"gte=0"`
	Class      string `json:"class" validate:"required,notblank"`
}

func (ns *NewStudent) Validate(sch *School) error {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Phone = core.CleanString(ns.Phone)
	ns.Class = core.CleanString(ns.Class)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	if _, ok := sch.GetStudent(ns.ID); ok {
		return core.NewValidationError(ErrStudentExists, core.FieldError{Field: "id", Error: ErrStudentExists.Error()})
	}
	return nil
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	ID      string  `json:"id" validate:"required,notblank"`
	Name    string  `json:"name" validate:"required,notblank"`
	Age     int     `json:"age" validate:"gt=0"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Subject string  `json:"subject" validate:"required,notblank"`
	Salary  float64 `json:"salary" validate:"gt=0"`
}

func (nt *NewTeacher) Validate(sch *School) error {
	nt.ID = core.CleanString(nt.ID)
	nt.Name = core.CleanString(nt.Name)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Subject = core.CleanString(nt.Subject)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	if _, ok := sch.GetTeacher(nt.ID); ok {
		return core.NewValidationError(ErrTeacherExists, core.FieldError{Field: "id", Error: ErrTeacherExists.Error()})
	}
	return nil
}

// NewGrade is a score for one subject.
type NewGrade struct {
	Subject string  `json:"subject" validate:"required,notblank"`
	Score   float64 `json:"score" validate:"gte=0,lte=100"`
}

func (ng *NewGrade) Validate() error {
	ng.Subject = core.CleanString(ng.Subject)
	return core.Validate.Struct(ng)
}

type ClassAssignment struct {
	Class string `json:"class" validate:"required,notblank"`
}

func (ca *ClassAssignment) Validate() error {
	ca.Class = core.CleanString(ca.Class)
	return core.Validate.Struct(ca)
}

type SalaryUpdate struct {
	Salary float64 `json:"salary" validate:"gt=0"`
}

func (su SalaryUpdate) Validate() error { return core.Validate.Struct(su) }

// NewFeedback contains information needed to record a comment about a person.
type NewFeedback struct {
	PersonID string `json:"person_id" validate:"required,notblank"`
	Role     string `json:"role" validate:"required,role"`
	Comment  string `json:"comment" validate:"required,notblank"`
}

func (nf *NewFeedback) Validate() error {
	nf.PersonID = core.CleanString(nf.PersonID)
	nf.Comment = core.CleanString(nf.Comment)
	if role, ok := person.ParseRole(nf.Role); ok {
		nf.Role = role.String()
	}
	return core.Validate.Struct(nf)
}
