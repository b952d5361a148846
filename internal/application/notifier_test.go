package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
)

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

func (m *fakeMailer) sentTo(to string) []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMail
	for _, mail := range m.sent {
		if mail.to == to {
			out = append(out, mail)
		}
	}
	return out
}

type sentHook struct {
	eventType string
	endpoints int
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentHook
}

func (s *fakeSender) Send(_ context.Context, endpoints []entities.WebhookEndpoint, eventType string, _ any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentHook{eventType: eventType, endpoints: len(endpoints)})
}

type fakeOrganizerRepo struct {
	organizers map[uint]*entities.Organizer
}

func (r *fakeOrganizerRepo) Create(_ context.Context, organizer *entities.Organizer) error {
	r.organizers[organizer.ID] = organizer
	return nil
}

func (r *fakeOrganizerRepo) FindByID(_ context.Context, id uint) (*entities.Organizer, error) {
	organizer, ok := r.organizers[id]
	if !ok {
		return nil, domain.ErrOrganizerNotFound
	}
	return organizer, nil
}

func (r *fakeOrganizerRepo) FindByAPIKeyHash(_ context.Context, hash string) (*entities.Organizer, error) {
	for _, organizer := range r.organizers {
		if organizer.APIKeyHash == hash {
			return organizer, nil
		}
	}
	return nil, domain.ErrOrganizerNotFound
}

// keyTranslator renders "key|data" so tests can assert which message was
// picked without loading real locale files.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, data map[string]any) string {
	return fmt.Sprintf("%s|%v", key, data["Name"])
}

type notifierHarness struct {
	notifier *Notifier
	mailer   *fakeMailer
	sender   *fakeSender
	hooks    *fakeWebhookRepo
}

func newNotifierHarness(t *testing.T) *notifierHarness {
	t.Helper()
	mailer := &fakeMailer{}
	sender := &fakeSender{}
	hooks := newFakeWebhookRepo()
	organizers := &fakeOrganizerRepo{organizers: map[uint]*entities.Organizer{
		1: {ID: 1, Name: "Host", Email: "host@example.com"},
	}}
	return &notifierHarness{
		notifier: NewNotifier(mailer, sender, hooks, organizers, keyTranslator{}, "en"),
		mailer:   mailer,
		sender:   sender,
		hooks:    hooks,
	}
}

func notifierEvent() *entities.Event {
	return &entities.Event{
		ID:          7,
		OrganizerID: 1,
		Slug:        "go-meetup",
		Title:       "Go Meetup",
		StartsAt:    time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestNotifierRegistrationCreated(t *testing.T) {
	h := newNotifierHarness(t)
	require.NoError(t, h.hooks.Create(context.Background(), &entities.WebhookEndpoint{
		OrganizerID: 1, URL: "https://hooks.example.com/a", Secret: "s", Active: true,
	}))
	require.NoError(t, h.hooks.Create(context.Background(), &entities.WebhookEndpoint{
		OrganizerID: 1, URL: "https://hooks.example.com/b", Secret: "s", Active: false,
	}))

	reg := &entities.Registration{ID: 3, EventID: 7, Email: "pat@example.com", FirstName: "Pat", Status: domain.StatusConfirmed}
	h.notifier.RegistrationCreated(notifierEvent(), reg)
	h.notifier.Wait()

	participant := h.mailer.sentTo("pat@example.com")
	require.Len(t, participant, 1)
	assert.Equal(t, "email.registration.confirmed.subject|Pat", participant[0].subject)
	assert.Len(t, h.mailer.sentTo("host@example.com"), 1)

	// Only the active endpoint is targeted.
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, WebhookRegistrationCreated, h.sender.sent[0].eventType)
	assert.Equal(t, 1, h.sender.sent[0].endpoints)
}

func TestNotifierWaitlistedUsesWaitlistMessage(t *testing.T) {
	h := newNotifierHarness(t)
	reg := &entities.Registration{Email: "pat@example.com", FirstName: "Pat", Status: domain.StatusWaitlist}
	h.notifier.RegistrationCreated(notifierEvent(), reg)
	h.notifier.Wait()

	participant := h.mailer.sentTo("pat@example.com")
	require.Len(t, participant, 1)
	assert.Equal(t, "email.registration.waitlist.subject|Pat", participant[0].subject)
}

func TestNotifierCancellationWithPromotion(t *testing.T) {
	h := newNotifierHarness(t)
	require.NoError(t, h.hooks.Create(context.Background(), &entities.WebhookEndpoint{
		OrganizerID: 1, URL: "https://hooks.example.com/a", Secret: "s", Active: true,
	}))

	cancelled := &entities.Registration{Email: "gone@example.com", FirstName: "Gone", Status: domain.StatusCancelled}
	promoted := &entities.Registration{Email: "next@example.com", FirstName: "Next", Status: domain.StatusConfirmed}
	h.notifier.RegistrationCancelled(notifierEvent(), cancelled, promoted, 2, 0)
	h.notifier.Wait()

	assert.Len(t, h.mailer.sentTo("gone@example.com"), 1)
	next := h.mailer.sentTo("next@example.com")
	require.Len(t, next, 1)
	assert.Equal(t, "email.registration.promoted.subject|Next", next[0].subject)

	var types []string
	for _, hook := range h.sender.sent {
		types = append(types, hook.eventType)
	}
	assert.ElementsMatch(t, []string{WebhookRegistrationCancelled, WebhookRegistrationPromoted}, types)
}

func TestNotifierStatusChangedWithoutPromotionIsSilent(t *testing.T) {
	h := newNotifierHarness(t)
	h.notifier.StatusChanged(notifierEvent(), nil)
	h.notifier.Wait()
	assert.Empty(t, h.mailer.sent)
	assert.Empty(t, h.sender.sent)
}
