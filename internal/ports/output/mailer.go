package output

import "context"

// Mailer sends one email. Delivery is best-effort: callers treat a
// returned error as loggable, never as a workflow failure.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
