package rest

import (
	"net/http"

	"eventdesk/internal/domain"
)

// HandleCreateEvent: POST /api/v1/events
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	if errs := req.validate(); errs != nil {
		WriteProblem(w, http.StatusBadRequest, "validation failed", "one or more fields are invalid", errs)
		return
	}

	event := req.toEntity()
	event.OrganizerID = actorFrom(r.Context()).ID
	if err := h.events.CreateEvent(r.Context(), event); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// HandleListEvents: GET /api/v1/events
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetEvent: GET /api/v1/events/{id}
func (h *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	event, err := h.events.GetEventByID(r.Context(), id, actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	confirmed, waitlisted, err := h.events.Counts(r.Context(), id, actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		eventResponse
		Confirmed  int64 `json:"confirmedCount"`
		Waitlisted int64 `json:"waitlistedCount"`
	}{toEventResponse(event), confirmed, waitlisted})
}

// HandleGetPublicEvent: GET /api/v1/events/slug/{slug} (published only)
func (h *Handler) HandleGetPublicEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetEventBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleUpdateEvent: PATCH /api/v1/events/{id}
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	var req eventRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	if errs := req.validate(); errs != nil {
		WriteProblem(w, http.StatusBadRequest, "validation failed", "one or more fields are invalid", errs)
		return
	}

	event := req.toEntity()
	event.ID = id
	if err := h.events.UpdateEvent(r.Context(), event, actorFrom(r.Context())); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleChangeEventStatus: POST /api/v1/events/{id}/status
func (h *Handler) HandleChangeEventStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	var req eventStatusRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	event, err := h.events.ChangeStatus(r.Context(), id, req.Status, actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleDeleteEvent: DELETE /api/v1/events/{id}
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrEventNotFound)
		return
	}
	if err := h.events.DeleteEvent(r.Context(), id, actorFrom(r.Context())); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
