// Package webhook delivers signed event payloads to registered endpoints.
// Delivery is single-attempt: failures are logged, never retried.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/output"
)

const (
	// SignatureHeader carries "sha256=<hex>" over the serialized payload.
	SignatureHeader = "X-Webhook-Signature"

	defaultTimeout = 10 * time.Second
)

var _ output.WebhookSender = (*Sender)(nil)

// Payload is the wire shape of one delivery.
type Payload struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

type Sender struct {
	client *http.Client
	now    func() time.Time
}

func NewSender() *Sender {
	return &Sender{
		client: &http.Client{Timeout: defaultTimeout},
		now:    time.Now,
	}
}

// Send fans the payload out to all endpoints concurrently and returns once
// every delivery has been attempted. A failing or slow endpoint only
// affects its own delivery.
func (s *Sender) Send(ctx context.Context, endpoints []entities.WebhookEndpoint, eventType string, data any) {
	payload := Payload{
		ID:        uuid.NewString(),
		Event:     eventType,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Data:      data,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[webhook] marshal %s payload: %v", eventType, err)
		return
	}

	var wg sync.WaitGroup
	for _, endpoint := range endpoints {
		wg.Add(1)
		go func(endpoint entities.WebhookEndpoint) {
			defer wg.Done()
			if err := s.deliver(ctx, endpoint, body); err != nil {
				log.Printf("[webhook] delivery %s to %s failed: %v", payload.ID, endpoint.URL, err)
			}
		}(endpoint)
	}
	wg.Wait()
}

func (s *Sender) deliver(ctx context.Context, endpoint entities.WebhookEndpoint, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Signature(endpoint.Secret, body))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

// Signature computes the "sha256=<hex>" HMAC-SHA256 signature of body.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
