package rest

import (
	"context"
	"errors"
	"net/http"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/output"
	"eventdesk/pkg/token"
)

type actorKey struct{}

// APIKeyAuth resolves the X-API-Key header to an organizer and stores it
// in the request context. Requests without a valid key get 401.
func APIKeyAuth(organizers output.OrganizerRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeDomainError(w, r, domain.ErrUnauthorized)
				return
			}
			organizer, err := organizers.FindByAPIKeyHash(r.Context(), token.Hash(key))
			if errors.Is(err, domain.ErrOrganizerNotFound) {
				writeDomainError(w, r, domain.ErrUnauthorized)
				return
			}
			if err != nil {
				writeDomainError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey{}, organizer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the authenticated organizer, or nil on public routes.
func actorFrom(ctx context.Context) *entities.Organizer {
	actor, _ := ctx.Value(actorKey{}).(*entities.Organizer)
	return actor
}
