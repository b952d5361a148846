package entities

import "time"

// Organizer owns events and webhook endpoints. API keys are stored as a
// SHA-256 hex digest; the clear key is only shown once at creation.
type Organizer struct {
	ID         uint
	Name       string
	Email      string
	APIKeyHash string
	Admin      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
