package input

import (
	"context"

	"eventdesk/internal/domain/entities"
)

// RegisterInput carries the participant fields of one admission attempt.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Notes     string
}

// CancelResult reports the cancelled registration and, when a confirmed
// seat was freed, the waitlisted registration promoted into it.
type CancelResult struct {
	Registration *entities.Registration
	Promoted     *entities.Registration
}

type RegistrationUseCase interface {
	// Register admits one participant. selfService enables the
	// public-form preconditions (event must not have started).
	Register(ctx context.Context, eventID uint, in RegisterInput, selfService bool) (*entities.Registration, error)
	RegisterBySlug(ctx context.Context, slug string, in RegisterInput) (*entities.Registration, error)
	CancelByToken(ctx context.Context, token string) (*CancelResult, error)
	CancelByID(ctx context.Context, id uint, actor *entities.Organizer) (*CancelResult, error)
	UpdateStatus(ctx context.Context, id uint, status string, actor *entities.Organizer) (*entities.Registration, error)
	UpdateNotes(ctx context.Context, id uint, notes string, actor *entities.Organizer) (*entities.Registration, error)
	ListByEvent(ctx context.Context, eventID uint, status string, actor *entities.Organizer) ([]entities.Registration, error)
}
