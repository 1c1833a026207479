package main

import (
	"fmt"
)

func (cli *commandLine) report(id string, send bool) error {
	if _, ok := cli.sch.GetStudent(id); ok {
		_, _ = fmt.Fprintln(cli.out, cli.sch.GenerateReport(id))
		if send && !cli.sch.SendReport(id) {
			return errReportNotSent
		}
		return nil
	}
	if _, ok := cli.sch.GetTeacher(id); ok {
		_, _ = fmt.Fprintln(cli.out, cli.sch.GenerateTeacherReport(id))
		return nil
	}
	return errPersonNotFound
}

func (cli *commandLine) stats() error {
	st := cli.sch.Statistics()
	_, _ = fmt.Fprintln(cli.out, st.String())
	_, _ = fmt.Fprintf(cli.out, "Created: %d people (%d students, %d teachers)\n",
		st.Created.People, st.Created.Students, st.Created.Teachers)
	return nil
}
