package application

import (
	"context"
	"fmt"
	"net/url"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/input"
	"eventdesk/internal/ports/output"
	"eventdesk/pkg/token"
)

var _ input.WebhookUseCase = (*WebhookService)(nil)

type WebhookService struct {
	webhookRepo output.WebhookRepository
}

func NewWebhookService(webhookRepo output.WebhookRepository) *WebhookService {
	return &WebhookService{webhookRepo: webhookRepo}
}

// CreateEndpoint registers a delivery target. A secret is generated when
// the caller does not supply one.
func (s *WebhookService) CreateEndpoint(ctx context.Context, endpoint *entities.WebhookEndpoint) error {
	parsed, err := url.Parse(endpoint.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("webhook url %q: missing scheme or host", endpoint.URL)
	}
	if endpoint.Secret == "" {
		secret, err := token.New(32)
		if err != nil {
			return fmt.Errorf("webhook secret: %w", err)
		}
		endpoint.Secret = secret
	}
	endpoint.Active = true
	return s.webhookRepo.Create(ctx, endpoint)
}

func (s *WebhookService) ListEndpoints(ctx context.Context, actor *entities.Organizer) ([]entities.WebhookEndpoint, error) {
	return s.webhookRepo.FindByOrganizerID(ctx, actor.ID)
}

func (s *WebhookService) DeleteEndpoint(ctx context.Context, id uint, actor *entities.Organizer) error {
	endpoint, err := s.webhookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && endpoint.OrganizerID != actor.ID {
		return domain.ErrForbidden
	}
	return s.webhookRepo.Delete(ctx, id)
}
