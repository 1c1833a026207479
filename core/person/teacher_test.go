package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeacher_AddClass(t *testing.T) {
	tc := NewTeacher("T001", "Mr. Smith", 40, "0811111111", "Math", 5000)

	assert.True(t, tc.AddClass("10B"))
	assert.True(t, tc.AddClass("10A"))
	assert.False(t, tc.AddClass("10B"))
	assert.Equal(t, []string{"10B", "10A"}, tc.Classes())
	assert.True(t, tc.HasClass("10A"))
	assert.False(t, tc.HasClass("11A"))

	classes := tc.Classes()
	classes[0] = "lol"
	assert.Equal(t, []string{"10B", "10A"}, tc.Classes())
}

func TestTeacher_SetSalary(t *testing.T) {
	tests := []struct {
		name   string
		salary float64
		want   bool
		wantV  float64
	}{
		{name: "raise", salary: 6000, want: true, wantV: 6000},
		{name: "zero", salary: 0, want: false, wantV: 5000},
		{name: "negative", salary: -1, want: false, wantV: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTeacher("T001", "Mr. Smith", 40, "0811111111", "Math", 5000)
			assert.Equal(t, tt.want, tc.SetSalary(tt.salary))
			assert.Equal(t, tt.wantV, tc.Salary())
		})
	}
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		salary float64
		want   float64
	}{
		{salary: 0, want: 0},
		{salary: 4999, want: 499.9},
		{salary: 5000, want: 750},
		{salary: 10000, want: 1500},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, CalculateTax(tt.salary), 1e-9, "CalculateTax(%v)", tt.salary)
	}
}

func TestTeacher_DisplayInfo(t *testing.T) {
	tc := NewTeacher("T001", "Mr. Smith", 40, "0811111111", "Math", 4500.5)
	want := "ID: T001\nName: Mr. Smith\nAge: 40\nPhone: 0811111111\nSubject: Math\nSalary: $4500.5\nClasses: None"
	assert.Equal(t, want, tc.DisplayInfo())

	tc.AddClass("10A")
	tc.AddClass("10B")
	tc.SetSalary(5000)
	want = "ID: T001\nName: Mr. Smith\nAge: 40\nPhone: 0811111111\nSubject: Math\nSalary: $5000\nClasses: 10A, 10B"
	assert.Equal(t, want, tc.DisplayInfo())
}
