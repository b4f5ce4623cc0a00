package service

import (
	"context"
	"encoding/json"
	"time"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/rs/zerolog"
)

// statusCacheTTL bounds how long a status snapshot is served from Redis.
const statusCacheTTL = 10 * time.Minute

// statusService implements ports.StatusService.
type statusService struct {
	gateway ports.Gateway
	tokens  ports.TokenProvider
	cache   ports.StatusCache // nil = caching disabled
	log     zerolog.Logger
}

// NewStatusService creates the status reconciliation service. cache may
// be nil to disable the Redis fast path.
func NewStatusService(gateway ports.Gateway, tokens ports.TokenProvider, cache ports.StatusCache, log zerolog.Logger) ports.StatusService {
	return &statusService{
		gateway: gateway,
		tokens:  tokens,
		cache:   cache,
		log:     log,
	}
}

// Status returns the authoritative state of an order. Completed statuses
// are immutable and may be served from the cache; everything else always
// hits the gateway.
func (s *statusService) Status(ctx context.Context, orderTrackingID string) (*domain.TransactionStatus, error) {
	if orderTrackingID == "" {
		return nil, apperror.Validation("Missing orderTrackingId")
	}

	if cached := s.fromCache(ctx, orderTrackingID); cached != nil {
		return cached, nil
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, apperror.StatusQuery(err)
	}

	status, err := s.gateway.GetTransactionStatus(ctx, token, orderTrackingID)
	if err != nil {
		s.log.Error().Err(err).Str("order_tracking_id", orderTrackingID).Msg("status query failed")
		return nil, apperror.StatusQuery(err)
	}

	s.toCache(ctx, orderTrackingID, status)

	return status, nil
}

// fromCache returns a cached snapshot only when it is terminal; pending
// and failed orders must be re-checked against the gateway.
func (s *statusService) fromCache(ctx context.Context, orderTrackingID string) *domain.TransactionStatus {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, orderTrackingID)
	if err != nil {
		s.log.Warn().Err(err).Msg("status cache read failed")
		return nil
	}
	if raw == nil {
		return nil
	}
	var status domain.TransactionStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil
	}
	if status.StatusCode != domain.StatusCompleted {
		return nil
	}
	return &status
}

func (s *statusService) toCache(ctx context.Context, orderTrackingID string, status *domain.TransactionStatus) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, orderTrackingID, raw, statusCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("status cache write failed")
	}
}
