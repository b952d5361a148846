package output

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type OrganizerRepository interface {
	Create(ctx context.Context, organizer *entities.Organizer) error
	FindByID(ctx context.Context, id uint) (*entities.Organizer, error)
	FindByAPIKeyHash(ctx context.Context, hash string) (*entities.Organizer, error)
}
