package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/services/notify"
	"github.com/trezcool/masomo/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	out := new(bytes.Buffer)
	sch := testutil.NewSchool(t, notify.NewConsoleEmailNotifier(out))
	return &commandLine{
		sch: sch,
		in:  strings.NewReader(""),
		out: out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, cli *commandLine, out *bytes.Buffer) {
	t.Helper()
	out.Reset()

	args := append([]string{"admin"}, tt.args...)
	err := cli.run(args)
	switch {
	case tt.wantErr != nil:
		assert.ErrorIs(t, err, tt.wantErr)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, errorMessage(err))
		}
	default:
		assert.NoError(t, err)
	}
	for _, s := range tt.wantOut {
		assert.Contains(t, out.String(), s)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)
	cli.db = testutil.PrepareDB(t)
	cli.engine = core.EngineSQLite

	origRun := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origRun })
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		if dir != "migrations/sqlite" {
			return fmt.Errorf("unexpected migrations dir %q", dir)
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}
}

func Test_commandLine_migrate_noSQLDatabase(t *testing.T) {
	cli, out := setup(t)
	cli.engine = core.EngineBolt

	cliTest{args: []string{"migrate", "up"}, wantErr: errNoSQLDatabase}.check(t, cli, out)
}

func Test_commandLine_students(t *testing.T) {
	cli, out := setup(t)
	testutil.CreateStudent(t, cli.sch, "S001", "John Doe", nil)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addstudent: no args", args: []string{"addstudent"}, wantErr: errHelp},
		{
			name:       "addstudent: invalid",
			args:       []string{"addstudent", "-id", "S002", "-age", "16", "-phone", "0812", "-class", "10B"},
			wantErrStr: "name: this field is required\nphone: phone number must contain at least 10 characters",
		},
		{
			name:    "addstudent: duplicate",
			args:    []string{"addstudent", "-id", "S001", "-name", "Jane", "-age", "16", "-phone", "0812345678", "-class", "10B"},
			wantErr: school.ErrStudentExists,
		},
		{
			name:    "addstudent",
			args:    []string{"addstudent", "-id", "S002", "-name", " Jane Smith ", "-age", "16", "-phone", "0812345678", "-grade", "11", "-class", "11B"},
			wantOut: []string{"Student Jane Smith (S002) added."},
		},
		{name: "addgrade: no args", args: []string{"addgrade"}, wantErr: errHelp},
		{name: "addgrade: unknown student", args: []string{"addgrade", "-id", "S999", "-subject", "Math", "-score", "90"}, wantErr: errStudentNotFound},
		{name: "addgrade: bad score", args: []string{"addgrade", "-id", "S002", "-subject", "Math", "-score", "101"}, wantErrStr: "score: score must be 100 or less"},
		{name: "addgrade: no subject", args: []string{"addgrade", "-id", "S002", "-score", "90"}, wantErrStr: "subject: this field is required"},
		{name: "addgrade", args: []string{"addgrade", "-id", "S002", "-subject", "Math", "-score", "90"}, wantOut: []string{"S002: Math = 90.0"}},
		{name: "students", args: []string{"students"}, wantOut: []string{"ID", "S001", "John Doe", "S002", "Jane Smith", "90.00", "4.00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}

	st, ok := cli.sch.GetStudent("S002")
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", st.Name())
	assert.Equal(t, 11, st.GradeLevel())
	assert.Equal(t, map[string]float64{"Math": 90}, st.Grades())
}

func Test_commandLine_teachers(t *testing.T) {
	cli, out := setup(t)
	testutil.CreateTeacher(t, cli.sch, "T001", "Jane Smith", "Mathematics", 5000, "10A")

	tests := []cliTest{
		{name: "addteacher: no args", args: []string{"addteacher"}, wantErr: errHelp},
		{
			name:       "addteacher: invalid salary",
			args:       []string{"addteacher", "-id", "T002", "-name", "Bob", "-age", "35", "-phone", "0812345678", "-subject", "Physics"},
			wantErrStr: "salary: salary must be greater than 0",
		},
		{
			name:    "addteacher: duplicate",
			args:    []string{"addteacher", "-id", "T001", "-name", "Bob", "-age", "35", "-phone", "0812345678", "-subject", "Physics", "-salary", "4000"},
			wantErr: school.ErrTeacherExists,
		},
		{
			name:    "addteacher",
			args:    []string{"addteacher", "-id", "T002", "-name", "Bob", "-age", "35", "-phone", "0812345678", "-subject", "Physics", "-salary", "4000"},
			wantOut: []string{"Teacher Bob (T002) added."},
		},
		{name: "assignclass: no args", args: []string{"assignclass"}, wantErr: errHelp},
		{name: "assignclass: unknown teacher", args: []string{"assignclass", "-id", "T999", "-class", "10A"}, wantErr: errTeacherNotFound},
		{name: "assignclass: already assigned", args: []string{"assignclass", "-id", "T001", "-class", "10A"}, wantErr: errClassAssigned},
		{name: "assignclass", args: []string{"assignclass", "-id", "T001", "-class", "11B"}, wantOut: []string{"Class 11B assigned to T001."}},
		{name: "setsalary: no args", args: []string{"setsalary"}, wantErr: errHelp},
		{name: "setsalary: unknown teacher", args: []string{"setsalary", "-id", "T999", "-salary", "100"}, wantErr: errTeacherNotFound},
		{name: "setsalary: invalid", args: []string{"setsalary", "-id", "T002", "-salary", "-1"}, wantErrStr: "salary: salary must be greater than 0"},
		{name: "setsalary", args: []string{"setsalary", "-id", "T002", "-salary", "6000"}, wantOut: []string{"T002: salary = 6000, tax = 900"}},
		{name: "teachers", args: []string{"teachers"}, wantOut: []string{"T001", "Mathematics", "10A, 11B", "T002", "Physics", "6000", "900"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}

	tc, ok := cli.sch.GetTeacher("T002")
	require.True(t, ok)
	assert.Equal(t, 6000.0, tc.Salary())
}

func Test_commandLine_feedback(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"addfeedback"}, wantErr: errHelp},
		{name: "no role", args: []string{"addfeedback", "-id", "S001"}, wantErr: errHelp},
		{name: "invalid role", args: []string{"addfeedback", "-id", "S001", "-role", "Janitor", "-comment", "hi"}, wantErrStr: "role: role must be one of Student or Teacher"},
		{name: "empty comment", args: []string{"addfeedback", "-id", "S001", "-role", "Student"}, extra: "   ", wantErrStr: "comment: this field is required"},
		{name: "with flag", args: []string{"addfeedback", "-id", "S001", "-role", "student", "-comment", "Great student"}, wantOut: []string{"Feedback #1 recorded for Student S001."}},
		{name: "from stdin", args: []string{"addfeedback", "-id", "T001", "-role", "Teacher"}, extra: "Very patient\n", wantOut: []string{"Feedback #2 recorded for Teacher T001."}},
		{name: "list", args: []string{"feedback"}, wantOut: []string{"2  T001    Teacher  Very patient", "1  S001    Student  Great student"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if in, ok := tt.extra.(string); ok {
				cli.in = strings.NewReader(in)
			}
			tt.check(t, cli, out)
		})
	}

	fbs, err := cli.sch.Feedback(context.Background())
	require.NoError(t, err)
	require.Len(t, fbs, 2)
	assert.Equal(t, "T001", fbs[0].PersonID)
}

func Test_commandLine_feedback_terminal(t *testing.T) {
	cli, out := setup(t)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	_, err = w.WriteString("Always on time\nHelps others\n\nignored\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	origIsTerminal := isTerminalFunc
	t.Cleanup(func() { isTerminalFunc = origIsTerminal })
	isTerminalFunc = func(fd int) bool { return true }
	cli.in = r

	cliTest{
		args:    []string{"addfeedback", "-id", "S001", "-role", "Student"},
		wantOut: []string{"Comment (finish with an empty line):", "Feedback #1 recorded for Student S001."},
	}.check(t, cli, out)

	fbs, err := cli.sch.Feedback(context.Background())
	require.NoError(t, err)
	require.Len(t, fbs, 1)
	assert.Equal(t, "Always on time\nHelps others", fbs[0].Comment)
}

func Test_commandLine_report(t *testing.T) {
	cli, out := setup(t)
	testutil.CreateStudent(t, cli.sch, "S001", "John Doe", map[string]float64{"Math": 85, "Science": 92, "English": 78})
	testutil.CreateTeacher(t, cli.sch, "T001", "Jane Smith", "Mathematics", 5000)

	tests := []cliTest{
		{name: "no args", args: []string{"report"}, wantErr: errHelp},
		{name: "unknown person", args: []string{"report", "-id", "X001"}, wantErr: errPersonNotFound},
		{name: "student", args: []string{"report", "-id", "S001"}, wantOut: []string{"STUDENT REPORT", "John Doe"}},
		{name: "student sent", args: []string{"report", "-id", "S001", "-send"}, wantOut: []string{notify.EmailPrefix + " ", "STUDENT REPORT"}},
		{name: "teacher", args: []string{"report", "-id", "T001"}, wantOut: []string{"TEACHER REPORT", "Jane Smith"}},
		{name: "stats", args: []string{"stats"}, wantOut: []string{"School: " + testutil.SchoolName, "Students: 1", "Teachers: 1", "Created: 2 people (1 students, 1 teachers)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}
}

func Test_commandLine_report_notSent(t *testing.T) {
	out := new(bytes.Buffer)
	cli := &commandLine{
		sch: school.New(school.Options{Name: testutil.SchoolName}),
		out: out,
	}
	testutil.CreateStudent(t, cli.sch, "S001", "John Doe", nil)

	cliTest{args: []string{"report", "-id", "S001", "-send"}, wantErr: errReportNotSent}.check(t, cli, out)
}
