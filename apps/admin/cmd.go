package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
)

var (
	errHelp            = errors.New("help provided")
	errStudentNotFound = errors.New(school.StudentNotFoundMsg)
	errTeacherNotFound = errors.New(school.TeacherNotFoundMsg)
	errPersonNotFound  = errors.New("no student or teacher with this id")
	errClassAssigned   = errors.New("class already assigned to this teacher")
	errReportNotSent   = errors.New("report could not be sent")
	errNoSQLDatabase   = errors.New("migrate needs an SQL database engine (sqlite or postgres)")
)

type commandLine struct {
	db     *sqlx.DB // only set for the migrate command
	engine string
	sch    *school.School
	in     io.Reader
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)")
	_, _ = fmt.Fprintln(cli.out, "  addstudent -id ID -name NAME -age AGE -phone PHONE -grade GRADE -class CLASS - add a student")
	_, _ = fmt.Fprintln(cli.out, "  addteacher -id ID -name NAME -age AGE -phone PHONE -subject SUBJECT -salary SALARY - add a teacher")
	_, _ = fmt.Fprintln(cli.out, "  addgrade -id ID -subject SUBJECT -score SCORE - record a student's score")
	_, _ = fmt.Fprintln(cli.out, "  assignclass -id ID -class CLASS - assign a class to a teacher")
	_, _ = fmt.Fprintln(cli.out, "  setsalary -id ID -salary SALARY - change a teacher's salary")
	_, _ = fmt.Fprintln(cli.out, "  addfeedback -id ID -role Student|Teacher [-comment COMMENT] - record feedback (comment read from stdin if omitted)")
	_, _ = fmt.Fprintln(cli.out, "  students - list students with their grades summary")
	_, _ = fmt.Fprintln(cli.out, "  teachers - list teachers")
	_, _ = fmt.Fprintln(cli.out, "  feedback - list feedback, most recent first")
	_, _ = fmt.Fprintln(cli.out, "  report -id ID [-send] - print (and send) a student's or teacher's report")
	_, _ = fmt.Fprintln(cli.out, "  stats - print school statistics")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "addstudent":
		cmd := cli.newFlagSet("addstudent")
		data := school.NewStudent{}
		cmd.StringVar(&data.ID, "id", "", "The student's unique ID.")
		cmd.StringVar(&data.Name, "name", "", "The student's full name.")
		cmd.IntVar(&data.Age, "age", 0, "The student's age.")
		cmd.StringVar(&data.Phone, "phone", "", "The student's phone number (at least 10 characters).")
		cmd.IntVar(&data.GradeLevel, "grade", 0, "The student's grade level.")
		cmd.StringVar(&data.Class, "class", "", "The student's class, eg. 10A.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if data.ID == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.addStudent(data)

	case "addteacher":
		cmd := cli.newFlagSet("addteacher")
		data := school.NewTeacher{}
		cmd.StringVar(&data.ID, "id", "", "The teacher's unique ID.")
		cmd.StringVar(&data.Name, "name", "", "The teacher's full name.")
		cmd.IntVar(&data.Age, "age", 0, "The teacher's age.")
		cmd.StringVar(&data.Phone, "phone", "", "The teacher's phone number (at least 10 characters).")
		cmd.StringVar(&data.Subject, "subject", "", "The subject taught.")
		cmd.Float64Var(&data.Salary, "salary", 0, "The teacher's salary.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if data.ID == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.addTeacher(data)

	case "addgrade":
		cmd := cli.newFlagSet("addgrade")
		id := cmd.String("id", "", "The student's ID.")
		data := school.NewGrade{}
		cmd.StringVar(&data.Subject, "subject", "", "The subject.")
		cmd.Float64Var(&data.Score, "score", -1, "The score, between 0 and 100.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.addGrade(*id, data)

	case "assignclass":
		cmd := cli.newFlagSet("assignclass")
		id := cmd.String("id", "", "The teacher's ID.")
		data := school.ClassAssignment{}
		cmd.StringVar(&data.Class, "class", "", "The class, eg. 10A.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.assignClass(*id, data)

	case "setsalary":
		cmd := cli.newFlagSet("setsalary")
		id := cmd.String("id", "", "The teacher's ID.")
		data := school.SalaryUpdate{}
		cmd.Float64Var(&data.Salary, "salary", 0, "The new salary.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.setSalary(*id, data)

	case "addfeedback":
		cmd := cli.newFlagSet("addfeedback")
		data := school.NewFeedback{}
		cmd.StringVar(&data.PersonID, "id", "", "The ID of the student or teacher.")
		cmd.StringVar(&data.Role, "role", "", "Student or Teacher.")
		cmd.StringVar(&data.Comment, "comment", "", "The comment. Read from stdin if omitted.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if data.PersonID == "" || data.Role == "" {
			cmd.Usage()
			return errHelp
		}
		if data.Comment == "" {
			comment, err := cli.readComment()
			if err != nil {
				return err
			}
			data.Comment = comment
		}
		return cli.addFeedback(data)

	case "students":
		return cli.listStudents()
	case "teachers":
		return cli.listTeachers()
	case "feedback":
		return cli.listFeedback()

	case "report":
		cmd := cli.newFlagSet("report")
		id := cmd.String("id", "", "The ID of the student or teacher.")
		send := cmd.Bool("send", false, "Send the report through the configured notifier (students only).")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.report(*id, *send)

	case "stats":
		return cli.stats()

	default:
		cli.printUsage()
		return errHelp
	}
}

// errorMessage renders validation errors one field per line.
func errorMessage(err error) string {
	var fields map[string]string

	var vErrs validator.ValidationErrors
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErrs):
		fields = core.TranslateValidationErrors(vErrs)
	case errors.As(err, &vErr) && len(vErr.Fields) > 0:
		fields = make(map[string]string, len(vErr.Fields))
		for _, f := range vErr.Fields {
			fields[f.Field] = f.Error
		}
	default:
		return err.Error()
	}

	lines := make([]string, 0, len(fields))
	for field, msg := range fields {
		lines = append(lines, field+": "+msg)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
