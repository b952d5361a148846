package domain

// Registration statuses.
const (
	StatusConfirmed = "CONFIRMED"
	StatusWaitlist  = "WAITLIST"
	StatusCancelled = "CANCELLED"
)

// Event statuses.
const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventClosed    = "CLOSED"
	EventCancelled = "CANCELLED"
)

// Event modes.
const (
	ModeInPerson = "IN_PERSON"
	ModeOnline   = "ONLINE"
)

// ValidRegistrationStatus reports whether s is a known registration status.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusWaitlist, StatusCancelled:
		return true
	}
	return false
}

// ValidEventStatus reports whether s is a known event status.
func ValidEventStatus(s string) bool {
	switch s {
	case EventDraft, EventPublished, EventClosed, EventCancelled:
		return true
	}
	return false
}

// ValidEventMode reports whether m is a known event mode.
func ValidEventMode(m string) bool {
	return m == ModeInPerson || m == ModeOnline
}
