package ports

import (
	"context"
	"time"

	"impact360-payments/internal/core/domain"
)

// ReconciliationRepository durably stores IPN reconciliation outcomes.
// Save is an upsert keyed by tracking id: the gateway may redeliver a
// notification, and the latest reconciliation wins.
type ReconciliationRepository interface {
	Save(ctx context.Context, rec *domain.ReconciliationRecord) error
	// GetByTrackingID returns nil, nil when no record exists.
	GetByTrackingID(ctx context.Context, orderTrackingID string) (*domain.ReconciliationRecord, error)
}

// StatusCache is the Redis-layer snapshot of recent transaction statuses
// keyed by tracking id (fast path for status polling).
type StatusCache interface {
	Get(ctx context.Context, orderTrackingID string) ([]byte, error) // Returns cached status JSON or nil
	Set(ctx context.Context, orderTrackingID string, value []byte, ttl time.Duration) error
}
