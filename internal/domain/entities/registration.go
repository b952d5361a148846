package entities

import "time"

// Registration represents one participant's registration for an event.
// There is at most one row per (event, email); re-registering a cancelled
// email reactivates the same row.
type Registration struct {
	ID          uint
	EventID     uint
	Email       string
	FirstName   string
	LastName    string
	Notes       string
	Status      string
	CancelToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Registration) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
