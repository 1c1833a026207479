package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/masomo/core/school"
)

func (cli *commandLine) addStudent(data school.NewStudent) error {
	if err := data.Validate(cli.sch); err != nil {
		return err
	}

	st := cli.sch.NewStudent(data.ID, data.Name, data.Age, data.Phone, data.GradeLevel, data.Class)
	added, err := cli.sch.AddStudent(context.Background(), st)
	if err != nil {
		return err
	}
	if !added {
		return school.ErrStudentExists
	}
	_, _ = fmt.Fprintf(cli.out, "Student %s (%s) added.\n", st.Name(), st.ID())
	return nil
}

func (cli *commandLine) addGrade(id string, data school.NewGrade) error {
	if _, ok := cli.sch.GetStudent(id); !ok {
		return errStudentNotFound
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := cli.sch.RecordGrade(context.Background(), id, data.Subject, data.Score); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "%s: %s = %.1f\n", id, data.Subject, data.Score)
	return nil
}

func (cli *commandLine) listStudents() error {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tGRADE\tCLASS\tSUBJECTS\tAVERAGE\tGPA\tLETTER\tSTATUS")
	for _, st := range cli.sch.Students() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%.2f\t%.2f\t%s\t%s\n",
			st.ID(), st.Name(), st.GradeLevel(), st.Class(), st.GradeCount(), st.CalculateAverage(),
			cli.sch.CalculateStudentGPA(st.ID()), cli.sch.LetterGrade(st.ID()), cli.sch.GradeStatus(st.ID()))
	}
	return w.Flush()
}
