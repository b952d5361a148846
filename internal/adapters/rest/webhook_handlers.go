package rest

import (
	"net/http"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
)

// HandleCreateWebhook: POST /api/v1/webhooks
func (h *Handler) HandleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error(), nil)
		return
	}
	endpoint := &entities.WebhookEndpoint{
		OrganizerID: actorFrom(r.Context()).ID,
		URL:         req.URL,
		Secret:      req.Secret,
	}
	if err := h.webhooks.CreateEndpoint(r.Context(), endpoint); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid request", err.Error(), nil)
		return
	}
	// The secret is returned once, on creation.
	writeJSON(w, http.StatusCreated, webhookResponse{
		ID:        endpoint.ID,
		URL:       endpoint.URL,
		Secret:    endpoint.Secret,
		Active:    endpoint.Active,
		CreatedAt: endpoint.CreatedAt,
	})
}

// HandleListWebhooks: GET /api/v1/webhooks
func (h *Handler) HandleListWebhooks(w http.ResponseWriter, r *http.Request) {
	endpoints, err := h.webhooks.ListEndpoints(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]webhookResponse, len(endpoints))
	for i, endpoint := range endpoints {
		out[i] = webhookResponse{
			ID:        endpoint.ID,
			URL:       endpoint.URL,
			Active:    endpoint.Active,
			CreatedAt: endpoint.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleDeleteWebhook: DELETE /api/v1/webhooks/{id}
func (h *Handler) HandleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, domain.ErrWebhookNotFound)
		return
	}
	if err := h.webhooks.DeleteEndpoint(r.Context(), id, actorFrom(r.Context())); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
