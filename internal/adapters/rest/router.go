package rest

import (
	"context"
	"net/http"

	"eventdesk/internal/ports/input"
	"eventdesk/internal/ports/output"
)

// Handler holds the use cases behind the HTTP surface.
type Handler struct {
	events        input.EventUseCase
	registrations input.RegistrationUseCase
	webhooks      input.WebhookUseCase
	ready         func(ctx context.Context) error
}

func NewHandler(
	events input.EventUseCase,
	registrations input.RegistrationUseCase,
	webhooks input.WebhookUseCase,
	ready func(ctx context.Context) error,
) *Handler {
	return &Handler{
		events:        events,
		registrations: registrations,
		webhooks:      webhooks,
		ready:         ready,
	}
}

// Options configures the cross-cutting middleware of the router.
type Options struct {
	Organizers   output.OrganizerRepository
	Limiter      *Limiter
	MaxBodyBytes int64
}

// Router assembles the public and authenticated routes.
func Router(h *Handler, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.HandleHealthz)
	mux.HandleFunc("GET /readyz", h.HandleReadyz)

	// Public surface. The registration form is rate limited per IP.
	register := http.Handler(http.HandlerFunc(h.HandlePublicRegister))
	if opts.Limiter != nil {
		register = RateLimitByIP(opts.Limiter)(register)
	}
	mux.Handle("POST /api/v1/events/{slug}/register", register)
	mux.HandleFunc("GET /api/v1/events/slug/{slug}", h.HandleGetPublicEvent)
	mux.HandleFunc("DELETE /api/v1/registrations/cancel/{token}", h.HandleCancelByToken)

	// Authenticated surface.
	auth := APIKeyAuth(opts.Organizers)
	mux.Handle("POST /api/v1/events", auth(http.HandlerFunc(h.HandleCreateEvent)))
	mux.Handle("GET /api/v1/events", auth(http.HandlerFunc(h.HandleListEvents)))
	mux.Handle("GET /api/v1/events/{id}", auth(http.HandlerFunc(h.HandleGetEvent)))
	mux.Handle("PATCH /api/v1/events/{id}", auth(http.HandlerFunc(h.HandleUpdateEvent)))
	mux.Handle("POST /api/v1/events/{id}/status", auth(http.HandlerFunc(h.HandleChangeEventStatus)))
	mux.Handle("DELETE /api/v1/events/{id}", auth(http.HandlerFunc(h.HandleDeleteEvent)))
	mux.Handle("POST /api/v1/events/{id}/registrations", auth(http.HandlerFunc(h.HandleAPIRegister)))
	mux.Handle("GET /api/v1/events/{id}/registrations", auth(http.HandlerFunc(h.HandleListRegistrations)))
	mux.Handle("PATCH /api/v1/registrations/{id}", auth(http.HandlerFunc(h.HandleUpdateRegistration)))
	mux.Handle("DELETE /api/v1/registrations/{id}", auth(http.HandlerFunc(h.HandleCancelRegistration)))
	mux.Handle("POST /api/v1/webhooks", auth(http.HandlerFunc(h.HandleCreateWebhook)))
	mux.Handle("GET /api/v1/webhooks", auth(http.HandlerFunc(h.HandleListWebhooks)))
	mux.Handle("DELETE /api/v1/webhooks/{id}", auth(http.HandlerFunc(h.HandleDeleteWebhook)))

	handler := RequireJSON(mux)
	return BodyLimit(opts.MaxBodyBytes)(handler)
}

func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.ready(r.Context()); err != nil {
		WriteProblem(w, http.StatusServiceUnavailable, "not ready", "database not reachable", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
