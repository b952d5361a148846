package output

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type WebhookRepository interface {
	Create(ctx context.Context, endpoint *entities.WebhookEndpoint) error
	FindByID(ctx context.Context, id uint) (*entities.WebhookEndpoint, error)
	FindActiveByOrganizerID(ctx context.Context, organizerID uint) ([]entities.WebhookEndpoint, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]entities.WebhookEndpoint, error)
	Delete(ctx context.Context, id uint) error
}
