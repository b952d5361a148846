package entities

import "time"

type Event struct {
	ID              uint
	OrganizerID     uint
	Slug            string
	Title           string
	Description     string
	Mode            string
	Location        string
	Capacity        *int // nil = unlimited
	WaitlistEnabled bool
	Status          string
	StartsAt        time.Time
	EndsAt          time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasStarted reports whether the event start time has elapsed at now.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartsAt.IsZero() && !now.Before(e.StartsAt)
}
