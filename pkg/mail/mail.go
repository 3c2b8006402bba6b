// Package mail sends a signature to a real inbox so it can be checked in the
// mail client it will be used from.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/sanitize"
)

var (
	ErrInvalidConfig  = errors.New("mail: invalid config")
	ErrInvalidMessage = errors.New("mail: invalid message")
	ErrFailedToSend   = errors.New("mail: failed to send email")
)

// DefaultSubject is used when a test message has no subject.
const DefaultSubject = "Your email signature"

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Tag     string
}

// Validate checks the recipient and that there is a body to send.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: recipient %q: %v", ErrInvalidMessage, m.To, err)
	}
	if strings.TrimSpace(m.HTML) == "" && strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: body is empty", ErrInvalidMessage)
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// TestMessage wraps a rendered signature in a short message body, with the
// plain-text part derived from the markup.
func TestMessage(to, subject, signatureHTML string) Message {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	html := "<p>This is how your signature renders in this mail client.</p>\n<p>--</p>\n" + signatureHTML
	text := "This is how your signature renders in this mail client.\n\n-- \n" + sanitize.PlainText(signatureHTML)
	return Message{
		To:      strings.TrimSpace(to),
		Subject: subject,
		HTML:    html,
		Text:    text,
		Tag:     "signature-test",
	}
}

// SendTest sends signatureHTML to the given address.
func SendTest(ctx context.Context, sender Sender, to, subject, signatureHTML string) error {
	if sender == nil {
		return fmt.Errorf("%w: sender is nil", ErrInvalidConfig)
	}
	return sender.Send(ctx, TestMessage(to, subject, signatureHTML))
}
