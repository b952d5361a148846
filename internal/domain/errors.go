package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrRegistrationNotFound   = errors.New("registration not found")
	ErrOrganizerNotFound      = errors.New("organizer not found")
	ErrWebhookNotFound        = errors.New("webhook endpoint not found")
	ErrNotOpenForRegistration = errors.New("event is not open for registration")
	ErrEventAlreadyPast       = errors.New("event has already started")
	ErrEventFull              = errors.New("event is full")
	ErrAlreadyRegistered      = errors.New("a registration already exists for this email")
	ErrAlreadyCancelled       = errors.New("registration is already cancelled")
	ErrCapacityExceeded       = errors.New("confirming would exceed the event capacity")
	ErrEndBeforeStart         = errors.New("event end time must be after its start time")
	ErrInvalidCapacity        = errors.New("capacity must be a positive integer")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidSlug            = errors.New("slug must be URL-safe (lowercase letters, digits, hyphens)")
	ErrInvalidMode            = errors.New("invalid event mode")
	ErrForbidden              = errors.New("organizer does not own this resource")
	ErrUnauthorized           = errors.New("missing or invalid API key")
)
