package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/input"
	"eventdesk/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type EventService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
}

func NewEventService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

// CreateEvent validates and stores a new event. Events start as DRAFT;
// registration only opens once the organizer publishes.
func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event) error {
	event.Slug = strings.ToLower(strings.TrimSpace(event.Slug))
	if err := validateEvent(event); err != nil {
		return err
	}
	if event.Status == "" {
		event.Status = domain.EventDraft
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *EventService) GetEventByID(ctx context.Context, id uint, actor *entities.Organizer) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, event) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// GetEventBySlug serves the public event page; only published events are
// visible.
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*entities.Event, error) {
	event, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventPublished {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, actor *entities.Organizer) ([]entities.Event, error) {
	return s.eventRepo.FindByOrganizerID(ctx, actor.ID)
}

// UpdateEvent applies organizer edits. Capacity may not drop below the
// current confirmed count.
func (s *EventService) UpdateEvent(ctx context.Context, event *entities.Event, actor *entities.Organizer) error {
	current, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if !canManage(actor, current) {
		return domain.ErrForbidden
	}
	event.OrganizerID = current.OrganizerID
	event.Status = current.Status
	event.Slug = strings.ToLower(strings.TrimSpace(event.Slug))
	if err := validateEvent(event); err != nil {
		return err
	}
	if event.Capacity != nil {
		confirmed, err := s.registrationRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
		if err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}
		if int64(*event.Capacity) < confirmed {
			return domain.ErrCapacityExceeded
		}
	}
	return s.eventRepo.Update(ctx, event)
}

// ChangeStatus moves an event through its lifecycle (publish, close,
// cancel, back to draft).
func (s *EventService) ChangeStatus(ctx context.Context, id uint, status string, actor *entities.Organizer) (*entities.Event, error) {
	if !domain.ValidEventStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, event) {
		return nil, domain.ErrForbidden
	}
	event.Status = status
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes the event; registrations go with it (cascade).
func (s *EventService) DeleteEvent(ctx context.Context, id uint, actor *entities.Organizer) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, event) {
		return domain.ErrForbidden
	}
	return s.eventRepo.Delete(ctx, id)
}

// Counts returns the confirmed and waitlisted registration counts.
func (s *EventService) Counts(ctx context.Context, id uint, actor *entities.Organizer) (int64, int64, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if !canManage(actor, event) {
		return 0, 0, domain.ErrForbidden
	}
	confirmed, err := s.registrationRepo.CountByEventIDAndStatus(ctx, id, domain.StatusConfirmed)
	if err != nil {
		return 0, 0, fmt.Errorf("count confirmed: %w", err)
	}
	waitlisted, err := s.registrationRepo.CountByEventIDAndStatus(ctx, id, domain.StatusWaitlist)
	if err != nil {
		return 0, 0, fmt.Errorf("count waitlisted: %w", err)
	}
	return confirmed, waitlisted, nil
}

func validateEvent(event *entities.Event) error {
	if !slugPattern.MatchString(event.Slug) {
		return domain.ErrInvalidSlug
	}
	if !domain.ValidEventMode(event.Mode) {
		return domain.ErrInvalidMode
	}
	if event.Status != "" && !domain.ValidEventStatus(event.Status) {
		return domain.ErrInvalidStatus
	}
	if event.Capacity != nil && *event.Capacity <= 0 {
		return domain.ErrInvalidCapacity
	}
	if !event.EndsAt.After(event.StartsAt) {
		return domain.ErrEndBeforeStart
	}
	return nil
}
