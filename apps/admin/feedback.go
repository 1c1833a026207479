package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/masomo/core/school"
)

var isTerminalFunc = term.IsTerminal // mockable

// readComment reads the comment from cli.in. On a terminal, it prompts and stops at the first empty line.
func (cli *commandLine) readComment() (string, error) {
	if f, ok := cli.in.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
		_, _ = fmt.Fprintln(cli.out, "Comment (finish with an empty line):")

		var lines []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				break
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading comment")
		}
		return strings.Join(lines, "\n"), nil
	}

	b, err := io.ReadAll(cli.in)
	if err != nil {
		return "", errors.Wrap(err, "reading comment")
	}
	return string(b), nil
}

func (cli *commandLine) addFeedback(data school.NewFeedback) error {
	if err := data.Validate(); err != nil {
		return err
	}

	fb, err := cli.sch.AddFeedback(context.Background(), data)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "Feedback #%d recorded for %s %s.\n", fb.ID, fb.Role, fb.PersonID)
	return nil
}

func (cli *commandLine) listFeedback() error {
	fbs, err := cli.sch.Feedback(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tPERSON\tROLE\tCOMMENT")
	for _, fb := range fbs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", fb.ID, fb.PersonID, fb.Role, strings.ReplaceAll(fb.Comment, "\n", " "))
	}
	return w.Flush()
}
