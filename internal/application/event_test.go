package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
)

func newEventService(store *memStore) *EventService {
	return NewEventService(&fakeEventRepo{store: store}, &fakeRegistrationRepo{store: store})
}

func draftEvent() *entities.Event {
	return &entities.Event{
		OrganizerID: 1,
		Slug:        "go-conf-2026",
		Title:       "Go Conf",
		Mode:        domain.ModeInPerson,
		StartsAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC),
	}
}

func TestCreateEventDefaultsToDraft(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)

	event := draftEvent()
	event.Slug = "  Go-Conf-2026  "
	require.NoError(t, service.CreateEvent(context.Background(), event))
	assert.Equal(t, "go-conf-2026", event.Slug)
	assert.Equal(t, domain.EventDraft, event.Status)
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *entities.Event)
		wantErr error
	}{
		{"bad slug", func(e *entities.Event) { e.Slug = "Go Conf!" }, domain.ErrInvalidSlug},
		{"empty slug", func(e *entities.Event) { e.Slug = "" }, domain.ErrInvalidSlug},
		{"bad mode", func(e *entities.Event) { e.Mode = "HYBRID" }, domain.ErrInvalidMode},
		{"zero capacity", func(e *entities.Event) { zero := 0; e.Capacity = &zero }, domain.ErrInvalidCapacity},
		{"negative capacity", func(e *entities.Event) { n := -3; e.Capacity = &n }, domain.ErrInvalidCapacity},
		{"ends before starts", func(e *entities.Event) { e.EndsAt = e.StartsAt.Add(-time.Hour) }, domain.ErrEndBeforeStart},
		{"ends equals starts", func(e *entities.Event) { e.EndsAt = e.StartsAt }, domain.ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newEventService(newMemStore())
			event := draftEvent()
			tt.mutate(event)
			assert.ErrorIs(t, service.CreateEvent(context.Background(), event), tt.wantErr)
		})
	}
}

func TestGetEventBySlugHidesUnpublished(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)

	event := draftEvent()
	event.Status = domain.EventDraft
	store.addEvent(event)

	_, err := service.GetEventBySlug(context.Background(), "go-conf-2026")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	event.Status = domain.EventPublished
	got, err := service.GetEventBySlug(context.Background(), "go-conf-2026")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
}

func TestUpdateEventCapacityBelowConfirmed(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)
	owner := &entities.Organizer{ID: 1}

	capacity := 5
	event := futureEvent(store, &capacity, false)
	repo := &fakeRegistrationRepo{store: store}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &entities.Registration{
			EventID: event.ID,
			Email:   string(rune('a'+i)) + "@example.com",
			Status:  domain.StatusConfirmed,
		}))
	}

	update := *event
	smaller := 2
	update.Capacity = &smaller
	err := service.UpdateEvent(context.Background(), &update, owner)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// Equal to the confirmed count is allowed.
	exact := 3
	update.Capacity = &exact
	require.NoError(t, service.UpdateEvent(context.Background(), &update, owner))
	assert.Equal(t, 3, *store.events[event.ID].Capacity)
}

func TestUpdateEventPreservesOwnerAndStatus(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)

	event := futureEvent(store, nil, false)
	update := *event
	update.OrganizerID = 42
	update.Status = domain.EventCancelled
	update.Title = "Renamed"
	require.NoError(t, service.UpdateEvent(context.Background(), &update, &entities.Organizer{ID: 1}))

	stored := store.events[event.ID]
	assert.EqualValues(t, 1, stored.OrganizerID)
	assert.Equal(t, domain.EventPublished, stored.Status)
	assert.Equal(t, "Renamed", stored.Title)
}

func TestEventAuthorization(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)
	event := futureEvent(store, nil, false) // organizer 1
	stranger := &entities.Organizer{ID: 2}
	admin := &entities.Organizer{ID: 2, Admin: true}

	_, err := service.GetEventByID(context.Background(), event.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = service.ChangeStatus(context.Background(), event.ID, domain.EventClosed, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = service.DeleteEvent(context.Background(), event.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.ChangeStatus(context.Background(), event.ID, domain.EventClosed, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.EventClosed, store.events[event.ID].Status)
}

func TestChangeStatusRejectsUnknown(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)
	event := futureEvent(store, nil, false)

	_, err := service.ChangeStatus(context.Background(), event.ID, "ARCHIVED", &entities.Organizer{ID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCounts(t *testing.T) {
	store := newMemStore()
	service := newEventService(store)
	capacity := 2
	event := futureEvent(store, &capacity, true)

	regService, _ := newTestService(store)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := register(t, regService, event.ID, email)
		require.NoError(t, err)
	}

	confirmed, waitlisted, err := service.Counts(context.Background(), event.ID, &entities.Organizer{ID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, confirmed)
	assert.EqualValues(t, 1, waitlisted)
}
