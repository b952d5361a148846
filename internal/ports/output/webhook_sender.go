package output

import (
	"context"

	"eventdesk/internal/domain/entities"
)

// WebhookSender fans a signed payload out to every endpoint. Endpoints are
// dispatched concurrently; one slow or failing endpoint never delays the
// others. Send returns after all deliveries have been attempted once.
type WebhookSender interface {
	Send(ctx context.Context, endpoints []entities.WebhookEndpoint, eventType string, data any)
}
