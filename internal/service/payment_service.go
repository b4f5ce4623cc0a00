package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/rs/zerolog"
)

// OrderConfig holds the static pieces of every submitted order.
type OrderConfig struct {
	Currency    string // e.g. KES
	Region      string // billing address country code, e.g. KE
	CallbackURL string // browser redirect target after checkout
	PhoneRules  domain.PhoneRules
}

// paymentService implements ports.PaymentService.
type paymentService struct {
	gateway  ports.Gateway
	tokens   ports.TokenProvider
	channels ports.ChannelRegistry
	cfg      OrderConfig
	log      zerolog.Logger
}

// NewPaymentService creates the order submission service.
func NewPaymentService(
	gateway ports.Gateway,
	tokens ports.TokenProvider,
	channels ports.ChannelRegistry,
	cfg OrderConfig,
	log zerolog.Logger,
) ports.PaymentService {
	return &paymentService{
		gateway:  gateway,
		tokens:   tokens,
		channels: channels,
		cfg:      cfg,
		log:      log,
	}
}

// CreateOrder validates the request, builds a PesaPal order and submits
// it. A failed submission leaves no state behind; the next attempt gets
// a fresh merchant reference.
func (s *paymentService) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*domain.OrderReceipt, error) {
	amount, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	phone := domain.NormalizePhone(req.Phone, s.cfg.PhoneRules)
	reference := domain.NewMerchantReference()
	firstName, lastName := domain.SplitName(strings.TrimSpace(req.FullName))

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, apperror.PaymentCreation("", err)
	}

	channelID, err := s.channels.ChannelID(ctx)
	if err != nil {
		return nil, apperror.PaymentCreation("", err)
	}

	order := &domain.PaymentOrder{
		ID:             reference,
		Currency:       s.cfg.Currency,
		Amount:         amount,
		Description:    fmt.Sprintf("Impact360 %s Subscription - %s", req.Plan, req.Period),
		CallbackURL:    s.cfg.CallbackURL,
		NotificationID: channelID,
		BillingAddress: domain.BillingAddress{
			EmailAddress: req.Email,
			PhoneNumber:  phone,
			CountryCode:  s.cfg.Region,
			FirstName:    firstName,
			LastName:     lastName,
		},
	}

	s.log.Info().
		Str("merchant_reference", reference).
		Str("plan", req.Plan).
		Float64("amount", amount).
		Msg("submitting payment order")

	receipt, err := s.gateway.SubmitOrder(ctx, token, order)
	if err != nil {
		s.log.Error().Err(err).Str("merchant_reference", reference).Msg("order submission failed")
		return nil, apperror.PaymentCreation("", err)
	}

	return receipt, nil
}

// validateRequest enforces the request preconditions: required fields present
// and a positive decimal amount. Runs before any network call.
func validateRequest(req ports.CreateOrderRequest) (float64, error) {
	if req.Plan == "" || req.Amount == "" || req.FullName == "" || req.Phone == "" || req.Email == "" {
		return 0, apperror.Validation("Missing required fields")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || amount <= 0 {
		return 0, apperror.Validation("Amount must be a positive number")
	}
	return amount, nil
}
