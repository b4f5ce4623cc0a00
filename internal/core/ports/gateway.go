package ports

import (
	"context"
	"errors"

	"impact360-payments/internal/core/domain"
)

// ErrChannelAlreadyRegistered is returned by Gateway.RegisterIPN when the
// gateway reports the callback URL as already registered (conflict status
// or an "already registered" message). Callers fall back to ListIPNs.
var ErrChannelAlreadyRegistered = errors.New("ipn url already registered")

// Gateway is the PesaPal v3 REST surface this service consumes. All
// methods except RequestToken require a bearer token from RequestToken.
type Gateway interface {
	// RequestToken exchanges the configured consumer credentials for a
	// short-lived bearer token.
	RequestToken(ctx context.Context) (*domain.Credential, error)

	// RegisterIPN registers callbackURL as an IPN endpoint and returns the
	// assigned channel. Returns ErrChannelAlreadyRegistered (possibly
	// wrapped) when the URL is already known to the gateway.
	RegisterIPN(ctx context.Context, token, callbackURL string) (*domain.NotificationChannel, error)

	// ListIPNs returns every IPN endpoint registered for this merchant.
	ListIPNs(ctx context.Context, token string) ([]domain.NotificationChannel, error)

	// SubmitOrder submits a payment order and returns the gateway receipt.
	SubmitOrder(ctx context.Context, token string, order *domain.PaymentOrder) (*domain.OrderReceipt, error)

	// GetTransactionStatus fetches the authoritative state of an order.
	GetTransactionStatus(ctx context.Context, token, orderTrackingID string) (*domain.TransactionStatus, error)
}
