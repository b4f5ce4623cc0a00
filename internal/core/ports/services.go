package ports

import (
	"context"

	"impact360-payments/internal/core/domain"
)

// TokenProvider hands out a valid gateway bearer token, refreshing the
// cached credential when it nears expiry. Concurrent callers observing an
// expired token coalesce into a single refresh.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	// Invalidate drops the cached credential so the next Token call
	// refreshes unconditionally.
	Invalidate()
}

// ChannelRegistry resolves the IPN notification channel id exactly once
// per process lifetime (or returns the externally configured id).
type ChannelRegistry interface {
	ChannelID(ctx context.Context) (string, error)
}

// PaymentService builds and submits payment orders.
type PaymentService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.OrderReceipt, error)
}

// CreateOrderRequest holds validated input for order submission.
type CreateOrderRequest struct {
	Plan     string
	Amount   string // decimal string from the client, parsed by the service
	Period   string
	FullName string
	Phone    string
	Email    string
}

// StatusService queries the gateway for the authoritative transaction
// state of a submitted order.
type StatusService interface {
	Status(ctx context.Context, orderTrackingID string) (*domain.TransactionStatus, error)
}

// IPNService runs the inbound notification pipeline:
// receive -> validate -> reconcile -> hand off -> acknowledge.
type IPNService interface {
	HandleNotification(ctx context.Context, n Notification) (*domain.TransactionStatus, error)
}

// Notification is a parsed inbound IPN call.
type Notification struct {
	OrderTrackingID   string
	MerchantReference string
}
