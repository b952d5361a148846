package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
)

// memStore is a shared in-memory backing store for the fake repositories.
// A single mutex stands in for the per-event row lock: fakeTxManager holds
// it for the duration of each transaction.
type memStore struct {
	mu      sync.Mutex
	events  map[uint]*entities.Event
	regs    map[uint]*entities.Registration
	nextID  uint
	tick    int64
	baseNow time.Time
}

func newMemStore() *memStore {
	return &memStore{
		events:  make(map[uint]*entities.Event),
		regs:    make(map[uint]*entities.Registration),
		baseNow: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// next returns strictly increasing timestamps so creation order is
// observable.
func (s *memStore) next() time.Time {
	s.tick++
	return s.baseNow.Add(time.Duration(s.tick) * time.Second)
}

func (s *memStore) addEvent(event *entities.Event) *entities.Event {
	if event.ID == 0 {
		event.ID = s.id()
	}
	s.events[event.ID] = event
	return event
}

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

type fakeEventRepo struct {
	store *memStore
}

func (r *fakeEventRepo) Create(_ context.Context, event *entities.Event) error {
	r.store.addEvent(event)
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*entities.Event, error) {
	event, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindBySlug(_ context.Context, slug string) (*entities.Event, error) {
	for _, event := range r.store.events {
		if event.Slug == slug {
			copied := *event
			return &copied, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *fakeEventRepo) FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeEventRepo) FindByOrganizerID(_ context.Context, organizerID uint) ([]entities.Event, error) {
	var out []entities.Event
	for _, event := range r.store.events {
		if event.OrganizerID == organizerID {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entities.Event) error {
	if _, ok := r.store.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	copied := *event
	r.store.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	delete(r.store.events, id)
	for regID, reg := range r.store.regs {
		if reg.EventID == id {
			delete(r.store.regs, regID)
		}
	}
	return nil
}

type fakeRegistrationRepo struct {
	store *memStore
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *entities.Registration) error {
	reg.ID = r.store.id()
	reg.CreatedAt = r.store.next()
	reg.UpdatedAt = reg.CreatedAt
	copied := *reg
	r.store.regs[reg.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (*entities.Registration, error) {
	reg, ok := r.store.regs[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (r *fakeRegistrationRepo) FindByCancelToken(_ context.Context, token string) (*entities.Registration, error) {
	for _, reg := range r.store.regs {
		if reg.CancelToken == token {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) FindByEventIDAndEmail(_ context.Context, eventID uint, email string) (*entities.Registration, error) {
	for _, reg := range r.store.regs {
		if reg.EventID == eventID && reg.Email == email {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) FindByEventID(_ context.Context, eventID uint) ([]entities.Registration, error) {
	var out []entities.Registration
	for _, reg := range r.store.regs {
		if reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindByEventIDAndStatus(_ context.Context, eventID uint, status string) ([]entities.Registration, error) {
	var out []entities.Registration
	for _, reg := range r.store.regs {
		if reg.EventID == eventID && reg.Status == status {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindOldestWaitlisted(_ context.Context, eventID uint) (*entities.Registration, error) {
	var oldest *entities.Registration
	for _, reg := range r.store.regs {
		if reg.EventID != eventID || reg.Status != domain.StatusWaitlist {
			continue
		}
		if oldest == nil || reg.CreatedAt.Before(oldest.CreatedAt) {
			oldest = reg
		}
	}
	if oldest == nil {
		return nil, domain.ErrRegistrationNotFound
	}
	copied := *oldest
	return &copied, nil
}

func (r *fakeRegistrationRepo) Update(_ context.Context, reg *entities.Registration) error {
	stored, ok := r.store.regs[reg.ID]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	reg.CreatedAt = stored.CreatedAt
	reg.UpdatedAt = r.store.next()
	copied := *reg
	r.store.regs[reg.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	delete(r.store.regs, id)
	return nil
}

func (r *fakeRegistrationRepo) CountByEventIDAndStatus(_ context.Context, eventID uint, status string) (int64, error) {
	var count int64
	for _, reg := range r.store.regs {
		if reg.EventID == eventID && reg.Status == status {
			count++
		}
	}
	return count, nil
}

type createdCall struct {
	event *entities.Event
	reg   *entities.Registration
}

type cancelledCall struct {
	event      *entities.Event
	reg        *entities.Registration
	promoted   *entities.Registration
	confirmed  int64
	waitlisted int64
}

type fakeNotifier struct {
	mu        sync.Mutex
	created   []createdCall
	cancelled []cancelledCall
	promoted  []*entities.Registration
}

func (n *fakeNotifier) RegistrationCreated(event *entities.Event, reg *entities.Registration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, createdCall{event: event, reg: reg})
}

func (n *fakeNotifier) RegistrationCancelled(event *entities.Event, reg, promoted *entities.Registration, confirmed, waitlisted int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, cancelledCall{event, reg, promoted, confirmed, waitlisted})
}

func (n *fakeNotifier) StatusChanged(_ *entities.Event, promoted *entities.Registration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if promoted != nil {
		n.promoted = append(n.promoted, promoted)
	}
}

// newTestService wires a RegistrationService over the in-memory fakes with
// a deterministic clock and token sequence.
func newTestService(store *memStore) (*RegistrationService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	service := NewRegistrationService(
		&fakeRegistrationRepo{store: store},
		&fakeEventRepo{store: store},
		&fakeTxManager{store: store},
		notifier,
	)
	service.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	var tokens int
	var tokenMu sync.Mutex
	service.newToken = func() (string, error) {
		tokenMu.Lock()
		defer tokenMu.Unlock()
		tokens++
		return fmt.Sprintf("token-%d", tokens), nil
	}
	return service, notifier
}

func futureEvent(store *memStore, capacity *int, waitlist bool) *entities.Event {
	return store.addEvent(&entities.Event{
		OrganizerID:     1,
		Slug:            fmt.Sprintf("meetup-%d", store.id()),
		Title:           "Go Meetup",
		Mode:            domain.ModeInPerson,
		Capacity:        capacity,
		WaitlistEnabled: waitlist,
		Status:          domain.EventPublished,
		StartsAt:        time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2026, 6, 1, 21, 0, 0, 0, time.UTC),
	})
}
