package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eventdesk/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an unexpected failure: logged with
// context, surfaced as a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrWebhookNotFound),
		errors.Is(err, domain.ErrOrganizerNotFound):
		WriteProblem(w, http.StatusNotFound, "not found", err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyCancelled):
		WriteProblem(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, domain.ErrNotOpenForRegistration),
		errors.Is(err, domain.ErrEventAlreadyPast),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidSlug),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrEndBeforeStart):
		WriteProblem(w, http.StatusBadRequest, "invalid request", err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		WriteProblem(w, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		WriteProblem(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	default:
		log.Printf("[rest] %s %s: %v", r.Method, r.URL.Path, err)
		WriteProblem(w, http.StatusInternalServerError, "internal error", "something went wrong", nil)
	}
}
