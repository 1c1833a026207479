package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"

	"github.com/pkg/errors"
)

var preTmpl = htmltmpl.Must(htmltmpl.New("pre").Parse(
	`<html><body><pre style="font-family: monospace">{{ . }}</pre></body></html>`,
))

type (
	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages in order and stops at the first failure.
		SendMessages(messages ...*EmailMessage) error
	}
)

// NewTextMessage builds a message whose HTML part is the escaped, preformatted text body.
func NewTextMessage(subject, body string, to ...mail.Address) (*EmailMessage, error) {
	var buff bytes.Buffer
	if err := preTmpl.Execute(&buff, body); err != nil {
		return nil, errors.Wrap(err, "rendering html content")
	}
	return &EmailMessage{
		To:          to,
		Subject:     subject,
		TextContent: body,
		HTMLContent: buff.String(),
	}, nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
