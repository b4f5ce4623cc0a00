package service

import (
	"context"
	"time"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/rs/zerolog"
)

// ipnService implements ports.IPNService: receive -> validate ->
// reconcile -> hand off -> acknowledge. Validation failures reject the
// notification before any gateway call; reconciliation failures bubble up
// so the HTTP layer answers with a server error and the gateway
// redelivers.
type ipnService struct {
	statuses ports.StatusService
	repo     ports.ReconciliationRepository // nil = persistence disabled
	log      zerolog.Logger
	now      func() time.Time
}

// NewIPNService creates the inbound notification service.
func NewIPNService(statuses ports.StatusService, repo ports.ReconciliationRepository, log zerolog.Logger) ports.IPNService {
	return &ipnService{
		statuses: statuses,
		repo:     repo,
		log:      log,
		now:      time.Now,
	}
}

// HandleNotification reconciles an inbound IPN against the gateway and
// hands the outcome to the persistence layer. The returned status is the
// gateway's verbatim snapshot; business outcome (completed, failed,
// invalid) does not affect acknowledgment.
func (s *ipnService) HandleNotification(ctx context.Context, n ports.Notification) (*domain.TransactionStatus, error) {
	if n.OrderTrackingID == "" {
		return nil, apperror.Validation("Missing OrderTrackingId")
	}

	s.log.Info().
		Str("order_tracking_id", n.OrderTrackingID).
		Str("merchant_reference", n.MerchantReference).
		Msg("IPN received")

	status, err := s.statuses.Status(ctx, n.OrderTrackingID)
	if err != nil {
		return nil, err
	}

	rec := domain.NewReconciliationRecord(n.OrderTrackingID, n.MerchantReference, status, s.now())
	if s.repo != nil {
		// Reconciliation succeeded; a storage hiccup is not a reason to
		// request redelivery. The record converges on the next query.
		if err := s.repo.Save(ctx, rec); err != nil {
			s.log.Error().Err(err).
				Str("order_tracking_id", n.OrderTrackingID).
				Msg("failed to persist reconciliation record")
		}
	}

	s.log.Info().
		Str("order_tracking_id", n.OrderTrackingID).
		Stringer("status", status.StatusCode).
		Str("confirmation_code", status.ConfirmationCode).
		Msg("IPN reconciled")

	return status, nil
}
