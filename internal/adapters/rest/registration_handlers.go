package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"eventdesk/internal/domain"
)

// HandlePublicRegister is the unauthenticated registration form endpoint:
// POST /api/v1/events/{slug}/register
func (h *Handler) HandlePublicRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	if errs := req.validate(); errs != nil {
		WriteProblem(w, http.StatusBadRequest, "validation failed", "one or more fields are invalid", errs)
		return
	}

	reg, err := h.registrations.RegisterBySlug(r.Context(), r.PathValue("slug"), req.toInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	message := "You're registered. See you there!"
	if reg.Status == domain.StatusWaitlist {
		message = "The event is full. You're on the waitlist and will be notified if a spot frees up."
	}
	writeJSON(w, http.StatusCreated, struct {
		statusMessage
		Registration registrationResponse `json:"registration"`
	}{
		statusMessage{Status: reg.Status, Message: message},
		toRegistrationResponse(reg, true),
	})
}

// HandleCancelByToken is the self-service cancel link:
// DELETE /api/v1/registrations/cancel/{token}
func (h *Handler) HandleCancelByToken(w http.ResponseWriter, r *http.Request) {
	if _, err := h.registrations.CancelByToken(r.Context(), r.PathValue("token")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusMessage{
		Status:  domain.StatusCancelled,
		Message: "Your registration has been cancelled.",
	})
}

// HandleAPIRegister creates a registration on behalf of an organizer:
// POST /api/v1/events/{id}/registrations
func (h *Handler) HandleAPIRegister(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	var req apiRegisterRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	if errs := req.validate(); errs != nil {
		WriteProblem(w, http.StatusBadRequest, "validation failed", "one or more fields are invalid", errs)
		return
	}

	actor := actorFrom(r.Context())
	event, err := h.events.GetEventByID(r.Context(), eventID, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	reg, err := h.registrations.Register(r.Context(), event.ID, req.toInput(), false)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRegistrationResponse(reg, true))
}

// HandleListRegistrations lists an event's registrations:
// GET /api/v1/events/{id}/registrations?status=...
func (h *Handler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	regs, err := h.registrations.ListByEvent(r.Context(), eventID, r.URL.Query().Get("status"), actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]registrationResponse, len(regs))
	for i := range regs {
		out[i] = toRegistrationResponse(&regs[i], false)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleUpdateRegistration updates status and/or notes:
// PATCH /api/v1/registrations/{id}
func (h *Handler) HandleUpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrRegistrationNotFound)
		return
	}
	var req registrationUpdateRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	if req.Status == nil && req.Notes == nil {
		WriteProblem(w, http.StatusBadRequest, "validation failed", "nothing to update", nil)
		return
	}

	actor := actorFrom(r.Context())
	reg := (*registrationResponse)(nil)
	if req.Status != nil {
		updated, err := h.registrations.UpdateStatus(r.Context(), id, *req.Status, actor)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		resp := toRegistrationResponse(updated, false)
		reg = &resp
	}
	if req.Notes != nil {
		updated, err := h.registrations.UpdateNotes(r.Context(), id, *req.Notes, actor)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		resp := toRegistrationResponse(updated, false)
		reg = &resp
	}
	writeJSON(w, http.StatusOK, reg)
}

// HandleCancelRegistration is the organizer cancel path:
// DELETE /api/v1/registrations/{id}
func (h *Handler) HandleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrRegistrationNotFound)
		return
	}
	result, err := h.registrations.CancelByID(r.Context(), id, actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	message := "Registration cancelled."
	if result.Promoted != nil {
		message = fmt.Sprintf("Registration cancelled; %s promoted from the waitlist.", result.Promoted.FullName())
	}
	writeJSON(w, http.StatusOK, statusMessage{Status: domain.StatusCancelled, Message: message})
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
