package output

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Event, error)
	// FindByIDForUpdate loads the event row under a row-level lock so that
	// concurrent admissions and cancellations on the same event serialize.
	FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id uint) error
}
