package entities

import "time"

// WebhookEndpoint is an outbound delivery target registered by an
// organizer. Payloads are signed with the endpoint secret.
type WebhookEndpoint struct {
	ID          uint
	OrganizerID uint
	URL         string
	Secret      string
	Active      bool
	CreatedAt   time.Time
}
