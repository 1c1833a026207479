package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

func (cli *commandLine) addTeacher(data school.NewTeacher) error {
	if err := data.Validate(cli.sch); err != nil {
		return err
	}

	t := cli.sch.NewTeacher(data.ID, data.Name, data.Age, data.Phone, data.Subject, data.Salary)
	added, err := cli.sch.AddTeacher(context.Background(), t)
	if err != nil {
		return err
	}
	if !added {
		return school.ErrTeacherExists
	}
	_, _ = fmt.Fprintf(cli.out, "Teacher %s (%s) added.\n", t.Name(), t.ID())
	return nil
}

func (cli *commandLine) assignClass(id string, data school.ClassAssignment) error {
	if _, ok := cli.sch.GetTeacher(id); !ok {
		return errTeacherNotFound
	}
	if err := data.Validate(); err != nil {
		return err
	}

	assigned, err := cli.sch.AssignClass(context.Background(), id, data.Class)
	if err != nil {
		return err
	}
	if !assigned {
		return errClassAssigned
	}
	_, _ = fmt.Fprintf(cli.out, "Class %s assigned to %s.\n", data.Class, id)
	return nil
}

func (cli *commandLine) setSalary(id string, data school.SalaryUpdate) error {
	if _, ok := cli.sch.GetTeacher(id); !ok {
		return errTeacherNotFound
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := cli.sch.UpdateSalary(context.Background(), id, data.Salary); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "%s: salary = %s, tax = %s\n",
		id, person.FormatAmount(data.Salary), person.FormatAmount(person.CalculateTax(data.Salary)))
	return nil
}

func (cli *commandLine) listTeachers() error {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tSALARY\tTAX\tCLASSES")
	for _, t := range cli.sch.Teachers() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID(), t.Name(), t.Subject(), person.FormatAmount(t.Salary()),
			person.FormatAmount(person.CalculateTax(t.Salary())), strings.Join(t.Classes(), ", "))
	}
	return w.Flush()
}
