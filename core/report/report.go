// Package report formats person reports and hands them to a Notifier.
package report

import (
	"strings"

	"github.com/trezcool/masomo/core/person"
)

const ruleWidth = 50

var rule = strings.Repeat("=", ruleWidth)

// Notifier is any channel able to deliver a text notification (email, SMS ...).
type Notifier interface {
	SendNotification(text string) bool
}

type Generator struct {
	notifier Notifier
}

func NewGenerator(notifier Notifier) *Generator {
	return &Generator{notifier: notifier}
}

// Generate builds the report of a person: a header naming the role, the person's info and a footer.
func (g *Generator) Generate(p person.Person) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(strings.ToUpper(p.Role().String()) + " REPORT\n")
	b.WriteString(rule + "\n")
	b.WriteString(p.DisplayInfo())
	b.WriteString("\n" + rule)
	return b.String()
}

// Send delivers a report through the injected Notifier.
func (g *Generator) Send(report string) bool {
	if g.notifier == nil {
		return false
	}
	return g.notifier.SendNotification(report)
}
