// Package mail implements the Mailer port. Actual delivery goes through an
// external provider; the log mailer stands in wherever no provider is
// configured (local development, tests).
package mail

import (
	"context"
	"log"

	"eventdesk/internal/ports/output"
)

var _ output.Mailer = (*LogMailer)(nil)

// LogMailer writes outbound mail to the process log instead of sending it.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("[mail] to=%s subject=%q\n%s", to, subject, body)
	return nil
}
