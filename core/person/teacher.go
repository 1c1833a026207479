package person

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	taxBracket   = 5000
	lowerTaxRate = 0.10
	upperTaxRate = 0.15
)

type Teacher struct {
	profile
	subject string
	salary  float64
	classes []string // unique, in assignment order
}

var _ Person = (*Teacher)(nil)

func NewTeacher(id, name string, age int, phone, subject string, salary float64) *Teacher {
	return &Teacher{
		profile: profile{id: id, name: name, age: age, phone: phone},
		subject: subject,
		salary:  salary,
	}
}

func (t *Teacher) Role() Role      { return RoleTeacher }
func (t *Teacher) Subject() string { return t.subject }
func (t *Teacher) Salary() float64 { return t.salary }

func (t *Teacher) Classes() []string {
	classes := make([]string, len(t.classes))
	copy(classes, t.classes)
	return classes
}

func (t *Teacher) HasClass(label string) bool {
	for _, c := range t.classes {
		if c == label {
			return true
		}
	}
	return false
}

// AddClass assigns a class to the teacher, unless it is already assigned.
func (t *Teacher) AddClass(label string) bool {
	if t.HasClass(label) {
		return false
	}
	t.classes = append(t.classes, label)
	return true
}

// SetSalary only accepts positive salaries.
func (t *Teacher) SetSalary(salary float64) bool {
	if salary <= 0 {
		return false
	}
	t.salary = salary
	return true
}

func (t *Teacher) DisplayInfo() string {
	classes := "None"
	if len(t.classes) > 0 {
		classes = strings.Join(t.classes, ", ")
	}

	var b strings.Builder
	t.writeInfo(&b)
	_, _ = fmt.Fprintf(&b, "Subject: %s\n", t.subject)
	_, _ = fmt.Fprintf(&b, "Salary: $%s\n", FormatAmount(t.salary))
	_, _ = fmt.Fprintf(&b, "Classes: %s", classes)
	return b.String()
}

// CalculateTax applies a flat rate: 10% below 5000, 15% from 5000 up.
func CalculateTax(salary float64) float64 {
	if salary < taxBracket {
		return salary * lowerTaxRate
	}
	return salary * upperTaxRate
}

// FormatAmount prints an amount with as few decimals as needed, eg. 5000 or 4500.5
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
