// Package person holds the people of a school: students and teachers.
package person

import (
	"fmt"
	"strings"
)

// Role tags
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

var AllRoles = []Role{RoleStudent, RoleTeacher}

func (r Role) String() string { return string(r) }

// ParseRole matches a role tag case-insensitively, eg. "student" => RoleStudent.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range AllRoles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}

const phoneMinLen = 10

// Person is implemented by *Student and *Teacher only.
type Person interface {
	ID() string
	Name() string
	Age() int
	Phone() string
	Role() Role
	DisplayInfo() string

	base() *profile
}

// profile holds what every Person has. The ID never changes once set.
type profile struct {
	id    string
	name  string
	age   int
	phone string
}

func (p *profile) ID() string     { return p.id }
func (p *profile) Name() string   { return p.name }
func (p *profile) Age() int       { return p.age }
func (p *profile) Phone() string  { return p.phone }
func (p *profile) base() *profile { return p }

func (p *profile) SetName(name string) {
	p.name = name
}

// SetPhone updates the phone number unless it is too short to be valid.
func (p *profile) SetPhone(phone string) bool {
	if !ValidatePhone(phone) {
		return false
	}
	p.phone = phone
	return true
}

func (p *profile) writeInfo(b *strings.Builder) {
	_, _ = fmt.Fprintf(b, "ID: %s\n", p.id)
	_, _ = fmt.Fprintf(b, "Name: %s\n", p.name)
	_, _ = fmt.Fprintf(b, "Age: %d\n", p.age)
	_, _ = fmt.Fprintf(b, "Phone: %s\n", p.phone)
}

// ValidatePhone checks that the phone number has at least 10 characters.
func ValidatePhone(phone string) bool {
	return len(phone) >= phoneMinLen
}
