package output

import (
	"context"

	"eventdesk/internal/domain/entities"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entities.Registration) error
	FindByID(ctx context.Context, id uint) (*entities.Registration, error)
	FindByCancelToken(ctx context.Context, token string) (*entities.Registration, error)
	// FindByEventIDAndEmail returns domain.ErrRegistrationNotFound when no
	// row exists for the pair.
	FindByEventIDAndEmail(ctx context.Context, eventID uint, email string) (*entities.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]entities.Registration, error)
	FindByEventIDAndStatus(ctx context.Context, eventID uint, status string) ([]entities.Registration, error)
	// FindOldestWaitlisted returns the WAITLIST row with the earliest
	// creation time, or domain.ErrRegistrationNotFound when the waitlist
	// is empty.
	FindOldestWaitlisted(ctx context.Context, eventID uint) (*entities.Registration, error)
	Update(ctx context.Context, registration *entities.Registration) error
	Delete(ctx context.Context, id uint) error
	CountByEventIDAndStatus(ctx context.Context, eventID uint, status string) (int64, error)
}
