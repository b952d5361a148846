package input

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type WebhookUseCase interface {
	CreateEndpoint(ctx context.Context, endpoint *entities.WebhookEndpoint) error
	ListEndpoints(ctx context.Context, actor *entities.Organizer) ([]entities.WebhookEndpoint, error)
	DeleteEndpoint(ctx context.Context, id uint, actor *entities.Organizer) error
}
