package input

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, event *entities.Event) error
	GetEventByID(ctx context.Context, id uint, actor *entities.Organizer) (*entities.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*entities.Event, error)
	ListEvents(ctx context.Context, actor *entities.Organizer) ([]entities.Event, error)
	UpdateEvent(ctx context.Context, event *entities.Event, actor *entities.Organizer) error
	ChangeStatus(ctx context.Context, id uint, status string, actor *entities.Organizer) (*entities.Event, error)
	DeleteEvent(ctx context.Context, id uint, actor *entities.Organizer) error
	Counts(ctx context.Context, id uint, actor *entities.Organizer) (confirmed, waitlisted int64, err error)
}
