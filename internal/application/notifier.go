package application

import (
	"context"
	"log"
	"sync"
	"time"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/output"
)

// Webhook event types.
const (
	WebhookRegistrationCreated   = "registration.created"
	WebhookRegistrationCancelled = "registration.cancelled"
	WebhookRegistrationPromoted  = "registration.promoted"
)

const notifyTimeout = 30 * time.Second

// Notifier dispatches post-commit side effects: emails to participants and
// organizers, webhook fan-out to the organizer's endpoints. Everything is
// fire-and-forget: a single attempt, failures logged and swallowed, never
// surfaced to the workflow that committed.
type Notifier struct {
	mailer        output.Mailer
	sender        output.WebhookSender
	webhookRepo   output.WebhookRepository
	organizerRepo output.OrganizerRepository
	translator    output.T
	locale        string

	wg sync.WaitGroup
}

func NewNotifier(
	mailer output.Mailer,
	sender output.WebhookSender,
	webhookRepo output.WebhookRepository,
	organizerRepo output.OrganizerRepository,
	translator output.T,
	locale string,
) *Notifier {
	return &Notifier{
		mailer:        mailer,
		sender:        sender,
		webhookRepo:   webhookRepo,
		organizerRepo: organizerRepo,
		translator:    translator,
		locale:        locale,
	}
}

// Wait blocks until all in-flight dispatches finish. Used on shutdown and
// in tests.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(fn func(ctx context.Context)) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		// The request context is gone by the time side effects run;
		// deliveries get their own bounded lifetime.
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// RegistrationCreated notifies after a successful admission commit.
func (n *Notifier) RegistrationCreated(event *entities.Event, reg *entities.Registration) {
	n.dispatch(func(ctx context.Context) {
		participantKey := "email.registration.confirmed"
		if reg.Status == domain.StatusWaitlist {
			participantKey = "email.registration.waitlist"
		}
		data := map[string]any{
			"Name":       reg.FullName(),
			"EventTitle": event.Title,
			"StartsAt":   event.StartsAt.Format(time.RFC1123),
			"Token":      reg.CancelToken,
		}
		n.email(ctx, reg.Email, participantKey, data)
		n.emailOrganizer(ctx, event, "email.organizer.registered", map[string]any{
			"Name":       reg.FullName(),
			"Email":      reg.Email,
			"EventTitle": event.Title,
			"Status":     reg.Status,
		})
		n.webhooks(ctx, event, WebhookRegistrationCreated, registrationPayload(event, reg))
	})
}

// RegistrationCancelled notifies after a cancellation commit. promoted is
// nil when no waitlisted registration took over the freed seat.
func (n *Notifier) RegistrationCancelled(event *entities.Event, reg, promoted *entities.Registration, confirmed, waitlisted int64) {
	n.dispatch(func(ctx context.Context) {
		n.email(ctx, reg.Email, "email.registration.cancelled", map[string]any{
			"Name":       reg.FullName(),
			"EventTitle": event.Title,
		})
		organizerData := map[string]any{
			"Name":       reg.FullName(),
			"Email":      reg.Email,
			"EventTitle": event.Title,
			"Confirmed":  confirmed,
			"Waitlisted": waitlisted,
			"Promoted":   "",
		}
		if promoted != nil {
			organizerData["Promoted"] = promoted.FullName()
		}
		n.emailOrganizer(ctx, event, "email.organizer.cancelled", organizerData)
		n.webhooks(ctx, event, WebhookRegistrationCancelled, registrationPayload(event, reg))
		if promoted != nil {
			n.RegistrationPromoted(ctx, event, promoted)
		}
	})
}

// RegistrationPromoted notifies the participant whose waitlisted
// registration became confirmed. Runs inside an existing dispatch.
func (n *Notifier) RegistrationPromoted(ctx context.Context, event *entities.Event, promoted *entities.Registration) {
	n.email(ctx, promoted.Email, "email.registration.promoted", map[string]any{
		"Name":       promoted.FullName(),
		"EventTitle": event.Title,
		"StartsAt":   event.StartsAt.Format(time.RFC1123),
		"Token":      promoted.CancelToken,
	})
	n.webhooks(ctx, event, WebhookRegistrationPromoted, registrationPayload(event, promoted))
}

// StatusChanged notifies promotion side effects of a manual status change.
func (n *Notifier) StatusChanged(event *entities.Event, promoted *entities.Registration) {
	if promoted == nil {
		return
	}
	n.dispatch(func(ctx context.Context) {
		n.RegistrationPromoted(ctx, event, promoted)
	})
}

func (n *Notifier) email(ctx context.Context, to, key string, data map[string]any) {
	subject := n.translator.T(n.locale, key+".subject", data)
	body := n.translator.T(n.locale, key+".body", data)
	if err := n.mailer.Send(ctx, to, subject, body); err != nil {
		log.Printf("[notify] email to %s failed: %v", to, err)
	}
}

func (n *Notifier) emailOrganizer(ctx context.Context, event *entities.Event, key string, data map[string]any) {
	organizer, err := n.organizerRepo.FindByID(ctx, event.OrganizerID)
	if err != nil {
		log.Printf("[notify] organizer lookup for event %d failed: %v", event.ID, err)
		return
	}
	n.email(ctx, organizer.Email, key, data)
}

func (n *Notifier) webhooks(ctx context.Context, event *entities.Event, eventType string, data any) {
	endpoints, err := n.webhookRepo.FindActiveByOrganizerID(ctx, event.OrganizerID)
	if err != nil {
		log.Printf("[notify] webhook endpoints for organizer %d: %v", event.OrganizerID, err)
		return
	}
	if len(endpoints) == 0 {
		return
	}
	n.sender.Send(ctx, endpoints, eventType, data)
}

func registrationPayload(event *entities.Event, reg *entities.Registration) map[string]any {
	return map[string]any{
		"registrationId": reg.ID,
		"eventId":        event.ID,
		"eventSlug":      event.Slug,
		"email":          reg.Email,
		"firstName":      reg.FirstName,
		"lastName":       reg.LastName,
		"status":         reg.Status,
	}
}
