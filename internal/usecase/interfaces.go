package usecase

import (
	"context"
	"io"

	"github.com/marketvibe/doorrenew-api/internal/entity"
	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
)

// ConversionTracker forwards marketing events to the attribution API.
// Delivery is best-effort: implementations log failures and return nil
// instead of erroring, so callers never branch on it.
type ConversionTracker interface {
	Send(ctx context.Context, event meta.Event) *meta.EventResponse
}

// RateLimiter answers whether a key (source IP) may submit again right now.
type RateLimiter interface {
	Allow(key string) bool
}

// EmailService sends the operator-facing lead notifications. Callers treat
// every send as best-effort.
type EmailService interface {
	SendLeadNotification(lead *entity.Lead) error
	SendSecondStepNotification(lead *entity.Lead) error
	SendWebhookLeadNotification(lead *entity.Lead, via string) error
	SendUnknownFormWarning(lead *entity.Lead, rawPayload []byte) error
}

// ImageStore persists one object and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
