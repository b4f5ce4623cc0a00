package postgres

import (
	"context"
	"errors"
	"fmt"

	"impact360-payments/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ReconciliationRepo implements ports.ReconciliationRepository.
type ReconciliationRepo struct {
	pool Pool
}

// NewReconciliationRepo creates a new ReconciliationRepo.
func NewReconciliationRepo(pool Pool) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool}
}

// Save upserts a reconciliation record keyed by tracking id. The gateway
// may redeliver notifications; the latest reconciliation wins.
func (r *ReconciliationRepo) Save(ctx context.Context, rec *domain.ReconciliationRecord) error {
	query := `INSERT INTO payment_reconciliations
			(order_tracking_id, merchant_reference, status_code, description, amount, payment_method, confirmation_code, reconciled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_tracking_id) DO UPDATE SET
			merchant_reference = EXCLUDED.merchant_reference,
			status_code = EXCLUDED.status_code,
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			payment_method = EXCLUDED.payment_method,
			confirmation_code = EXCLUDED.confirmation_code,
			reconciled_at = EXCLUDED.reconciled_at`

	_, err := r.pool.Exec(ctx, query,
		rec.OrderTrackingID, rec.MerchantReference, int(rec.StatusCode), rec.Description,
		rec.Amount, rec.PaymentMethod, rec.ConfirmationCode, rec.ReconciledAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reconciliation record: %w", err)
	}
	return nil
}

// GetByTrackingID fetches a reconciliation record by tracking id.
// Returns nil, nil when no record exists.
func (r *ReconciliationRepo) GetByTrackingID(ctx context.Context, orderTrackingID string) (*domain.ReconciliationRecord, error) {
	query := `SELECT order_tracking_id, merchant_reference, status_code, description, amount, payment_method, confirmation_code, reconciled_at
		FROM payment_reconciliations WHERE order_tracking_id = $1`

	rec := &domain.ReconciliationRecord{}
	var statusCode int
	err := r.pool.QueryRow(ctx, query, orderTrackingID).Scan(
		&rec.OrderTrackingID, &rec.MerchantReference, &statusCode, &rec.Description,
		&rec.Amount, &rec.PaymentMethod, &rec.ConfirmationCode, &rec.ReconciledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reconciliation record: %w", err)
	}
	rec.StatusCode = domain.StatusCode(statusCode)
	return rec, nil
}
