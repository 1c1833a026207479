// Package notify delivers generated reports to parents and staff.
package notify

import (
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/report"
)

// Console prefixes
const (
	EmailPrefix = "[EMAIL]"
	SMSPrefix   = "[SMS]"
)

// ConsoleNotifier prints each notification on a single prefixed line.
type ConsoleNotifier struct {
	w      io.Writer
	prefix string
}

var _ report.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleEmailNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, prefix: EmailPrefix}
}

func NewConsoleSMSNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, prefix: SMSPrefix}
}

func (n *ConsoleNotifier) SendNotification(text string) bool {
	_, err := fmt.Fprintf(n.w, "%s %s\n", n.prefix, text)
	return err == nil
}

// EmailNotifier mails each notification to a fixed list of recipients.
type EmailNotifier struct {
	svc     core.EmailService
	to      []mail.Address
	subject string
	logger  core.Logger
}

var _ report.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(svc core.EmailService, to []mail.Address, subject string, logger core.Logger) *EmailNotifier {
	return &EmailNotifier{svc: svc, to: to, subject: subject, logger: logger}
}

func (n *EmailNotifier) SendNotification(text string) bool {
	msg, err := core.NewTextMessage(n.subject, text, n.to...)
	if err != nil {
		n.logger.Error("notify.email: building message", err)
		return false
	}
	if err = n.svc.SendMessages(msg); err != nil {
		n.logger.Error("notify.email: sending message", err)
		return false
	}
	return true
}

// New builds the notifier for the configured channel.
func New(conf *core.Config, w io.Writer, svc core.EmailService, logger core.Logger) (report.Notifier, error) {
	switch strings.ToLower(conf.Notifier.Channel) {
	case "", core.ChannelConsoleEmail:
		return NewConsoleEmailNotifier(w), nil
	case core.ChannelConsoleSMS:
		return NewConsoleSMSNotifier(w), nil
	case core.ChannelEmail:
		to := conf.NotifierRecipients()
		if len(to) == 0 {
			return nil, errors.Errorf("notify: channel %q needs at least one recipient", conf.Notifier.Channel)
		}
		return NewEmailNotifier(svc, to, conf.SchoolName+" report", logger), nil
	default:
		return nil, errors.Errorf("notify: unknown channel %q", conf.Notifier.Channel)
	}
}
