package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/input"
	"eventdesk/internal/ports/output"
	"eventdesk/pkg/token"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

// workflowNotifier is the post-commit side of the registration workflows.
type workflowNotifier interface {
	RegistrationCreated(event *entities.Event, reg *entities.Registration)
	RegistrationCancelled(event *entities.Event, reg, promoted *entities.Registration, confirmed, waitlisted int64)
	StatusChanged(event *entities.Event, promoted *entities.Registration)
}

// RegistrationService implements admission, cancellation with waitlist
// promotion, and manual status changes. Every read-check-write sequence
// runs inside one transaction holding a row lock on the event, so
// concurrent attempts against the same event serialize while different
// events proceed independently.
type RegistrationService struct {
	registrationRepo output.RegistrationRepository
	eventRepo        output.EventRepository
	tx               output.TxManager
	notifier         workflowNotifier
	now              func() time.Time
	newToken         func() (string, error)
}

func NewRegistrationService(
	registrationRepo output.RegistrationRepository,
	eventRepo output.EventRepository,
	tx output.TxManager,
	notifier workflowNotifier,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		tx:               tx,
		notifier:         notifier,
		now:              time.Now,
		newToken:         func() (string, error) { return token.New(16) },
	}
}

// Register admits one participant for the event. selfService enables the
// public-form rule that a started event no longer accepts registrations.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, in input.RegisterInput, selfService bool) (*entities.Registration, error) {
	return s.register(ctx, func(ctx context.Context) (*entities.Event, error) {
		return s.eventRepo.FindByIDForUpdate(ctx, eventID)
	}, in, selfService)
}

// RegisterBySlug is the public-form entry point.
func (s *RegistrationService) RegisterBySlug(ctx context.Context, slug string, in input.RegisterInput) (*entities.Registration, error) {
	return s.register(ctx, func(ctx context.Context) (*entities.Event, error) {
		event, err := s.eventRepo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		// Re-read under lock; the unlocked row may be stale by now.
		return s.eventRepo.FindByIDForUpdate(ctx, event.ID)
	}, in, true)
}

func (s *RegistrationService) register(ctx context.Context, lockEvent func(ctx context.Context) (*entities.Event, error), in input.RegisterInput, selfService bool) (*entities.Registration, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var event *entities.Event
	var reg *entities.Registration
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		event, err = lockEvent(ctx)
		if err != nil {
			return err
		}
		if event.Status != domain.EventPublished {
			return domain.ErrNotOpenForRegistration
		}
		if selfService && event.HasStarted(s.now()) {
			return domain.ErrEventAlreadyPast
		}

		confirmed, err := s.registrationRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
		if err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}

		existing, err := s.registrationRepo.FindByEventIDAndEmail(ctx, event.ID, email)
		switch {
		case errors.Is(err, domain.ErrRegistrationNotFound):
			reg, err = s.admitNew(ctx, event, email, in, int(confirmed))
			return err
		case err != nil:
			return fmt.Errorf("find registration: %w", err)
		case existing.Status == domain.StatusCancelled:
			reg, err = s.reactivate(ctx, event, existing, in, int(confirmed))
			return err
		default:
			return domain.ErrAlreadyRegistered
		}
	})
	if err != nil {
		return nil, err
	}

	s.notifier.RegistrationCreated(event, reg)
	return reg, nil
}

func (s *RegistrationService) admitNew(ctx context.Context, event *entities.Event, email string, in input.RegisterInput, confirmed int) (*entities.Registration, error) {
	status, err := s.decide(event, confirmed)
	if err != nil {
		return nil, err
	}
	cancelToken, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("cancel token: %w", err)
	}
	reg := &entities.Registration{
		EventID:     event.ID,
		Email:       email,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Notes:       in.Notes,
		Status:      status,
		CancelToken: cancelToken,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

// reactivate reuses the cancelled row. The confirmed count never includes
// the row itself (it is CANCELLED), so the policy is re-evaluated exactly
// as for a new registration.
func (s *RegistrationService) reactivate(ctx context.Context, event *entities.Event, existing *entities.Registration, in input.RegisterInput, confirmed int) (*entities.Registration, error) {
	status, err := s.decide(event, confirmed)
	if err != nil {
		return nil, err
	}
	existing.Status = status
	existing.FirstName = strings.TrimSpace(in.FirstName)
	existing.LastName = strings.TrimSpace(in.LastName)
	existing.Notes = in.Notes
	if err := s.registrationRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return existing, nil
}

func (s *RegistrationService) decide(event *entities.Event, confirmed int) (string, error) {
	switch domain.Decide(confirmed, event.Capacity, event.WaitlistEnabled) {
	case domain.AdmitConfirmed:
		return domain.StatusConfirmed, nil
	case domain.AdmitWaitlist:
		return domain.StatusWaitlist, nil
	default:
		return "", domain.ErrEventFull
	}
}

// CancelByToken is the self-service cancellation path.
func (s *RegistrationService) CancelByToken(ctx context.Context, cancelToken string) (*input.CancelResult, error) {
	return s.cancel(ctx, func(ctx context.Context) (*entities.Registration, error) {
		return s.registrationRepo.FindByCancelToken(ctx, cancelToken)
	}, nil)
}

// CancelByID is the organizer path; actor must own the parent event or be
// an admin.
func (s *RegistrationService) CancelByID(ctx context.Context, id uint, actor *entities.Organizer) (*input.CancelResult, error) {
	return s.cancel(ctx, func(ctx context.Context) (*entities.Registration, error) {
		return s.registrationRepo.FindByID(ctx, id)
	}, actor)
}

func (s *RegistrationService) cancel(ctx context.Context, locate func(ctx context.Context) (*entities.Registration, error), actor *entities.Organizer) (*input.CancelResult, error) {
	var event *entities.Event
	result := &input.CancelResult{}
	var confirmed, waitlisted int64

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		located, err := locate(ctx)
		if err != nil {
			return err
		}
		event, err = s.eventRepo.FindByIDForUpdate(ctx, located.EventID)
		if err != nil {
			return err
		}
		if actor != nil && !canManage(actor, event) {
			return domain.ErrForbidden
		}
		// Re-read under the event lock; a concurrent cancel may have
		// won the race between locate and the lock.
		reg, err := s.registrationRepo.FindByID(ctx, located.ID)
		if err != nil {
			return err
		}
		if reg.Status == domain.StatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		freedASeat := reg.Status == domain.StatusConfirmed
		reg.Status = domain.StatusCancelled
		if err := s.registrationRepo.Update(ctx, reg); err != nil {
			return fmt.Errorf("update registration: %w", err)
		}
		result.Registration = reg

		if freedASeat {
			promoted, err := s.promoteOldest(ctx, event.ID)
			if err != nil {
				return err
			}
			result.Promoted = promoted
		}

		if confirmed, err = s.registrationRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}
		if waitlisted, err = s.registrationRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusWaitlist); err != nil {
			return fmt.Errorf("count waitlisted: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.RegistrationCancelled(event, result.Registration, result.Promoted, confirmed, waitlisted)
	return result, nil
}

// promoteOldest confirms the registration that has been waiting the
// longest. Returns nil when the waitlist is empty.
func (s *RegistrationService) promoteOldest(ctx context.Context, eventID uint) (*entities.Registration, error) {
	next, err := s.registrationRepo.FindOldestWaitlisted(ctx, eventID)
	if errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find waitlisted: %w", err)
	}
	next.Status = domain.StatusConfirmed
	if err := s.registrationRepo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("promote registration: %w", err)
	}
	return next, nil
}

// UpdateStatus lets an organizer set a registration status directly.
// Forcing CONFIRMED re-checks capacity; leaving CONFIRMED frees a seat and
// promotes the oldest waitlisted registration.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id uint, status string, actor *entities.Organizer) (*entities.Registration, error) {
	if !domain.ValidRegistrationStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	var event *entities.Event
	var reg *entities.Registration
	var promoted *entities.Registration
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		located, err := s.registrationRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		event, err = s.eventRepo.FindByIDForUpdate(ctx, located.EventID)
		if err != nil {
			return err
		}
		if !canManage(actor, event) {
			return domain.ErrForbidden
		}
		reg, err = s.registrationRepo.FindByID(ctx, located.ID)
		if err != nil {
			return err
		}
		if reg.Status == status {
			return nil
		}

		if status == domain.StatusConfirmed && event.Capacity != nil {
			confirmed, err := s.registrationRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
			if err != nil {
				return fmt.Errorf("count confirmed: %w", err)
			}
			// reg is not CONFIRMED here, so the count excludes it.
			if int(confirmed) >= *event.Capacity {
				return domain.ErrCapacityExceeded
			}
		}

		freedASeat := reg.Status == domain.StatusConfirmed
		reg.Status = status
		if err := s.registrationRepo.Update(ctx, reg); err != nil {
			return fmt.Errorf("update registration: %w", err)
		}
		if freedASeat {
			if promoted, err = s.promoteOldest(ctx, event.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(event, promoted)
	return reg, nil
}

// UpdateNotes updates the free-text notes on a registration.
func (s *RegistrationService) UpdateNotes(ctx context.Context, id uint, notes string, actor *entities.Organizer) (*entities.Registration, error) {
	reg, err := s.registrationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, event) {
		return nil, domain.ErrForbidden
	}
	reg.Notes = notes
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return reg, nil
}

// ListByEvent returns the event's registrations, optionally filtered by
// status.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uint, status string, actor *entities.Organizer) ([]entities.Registration, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, event) {
		return nil, domain.ErrForbidden
	}
	if status == "" {
		return s.registrationRepo.FindByEventID(ctx, eventID)
	}
	if !domain.ValidRegistrationStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.registrationRepo.FindByEventIDAndStatus(ctx, eventID, status)
}

func canManage(actor *entities.Organizer, event *entities.Event) bool {
	if actor == nil {
		return false
	}
	return actor.Admin || actor.ID == event.OrganizerID
}
