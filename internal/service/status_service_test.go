package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func completedStatus() *domain.TransactionStatus {
	return &domain.TransactionStatus{
		PaymentMethod:            "MpesaKE",
		Amount:                   100.5,
		ConfirmationCode:         "QWE123",
		PaymentStatusDescription: "Completed",
		StatusCode:               domain.StatusCompleted,
		MerchantReference:        "IMPACT360_1_abc",
	}
}

func TestStatusService_MissingTrackingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)

	svc := NewStatusService(gw, tokens, nil, zerolog.Nop())

	_, err := svc.Status(context.Background(), "")
	assertAppError(t, err, "VAL_001")
}

func TestStatusService_QueriesGatewayAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	tokens.EXPECT().Token(gomock.Any()).Return("tok", nil)
	cache.EXPECT().Get(gomock.Any(), "track-1").Return(nil, nil)
	gw.EXPECT().GetTransactionStatus(gomock.Any(), "tok", "track-1").Return(completedStatus(), nil)

	var written []byte
	cache.EXPECT().Set(gomock.Any(), "track-1", gomock.Any(), statusCacheTTL).
		DoAndReturn(func(_ context.Context, _ string, raw []byte, _ time.Duration) error {
			written = raw
			return nil
		})

	svc := NewStatusService(gw, tokens, cache, zerolog.Nop())

	status, err := svc.Status(context.Background(), "track-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.StatusCode)
	assert.Equal(t, "QWE123", status.ConfirmationCode)

	var cached domain.TransactionStatus
	require.NoError(t, json.Unmarshal(written, &cached))
	assert.Equal(t, domain.StatusCompleted, cached.StatusCode)
}

func TestStatusService_CompletedCacheHitSkipsGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	raw, err := json.Marshal(completedStatus())
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), "track-1").Return(raw, nil)

	svc := NewStatusService(gw, tokens, cache, zerolog.Nop())

	status, err := svc.Status(context.Background(), "track-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.StatusCode)
	assert.Equal(t, "QWE123", status.ConfirmationCode)
}

func TestStatusService_PendingCacheHitRequeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	pending := completedStatus()
	pending.StatusCode = domain.StatusInvalid
	pending.PaymentStatusDescription = "Invalid"
	raw, err := json.Marshal(pending)
	require.NoError(t, err)

	// A non-terminal snapshot in the cache must not short-circuit the
	// gateway call.
	cache.EXPECT().Get(gomock.Any(), "track-1").Return(raw, nil)
	tokens.EXPECT().Token(gomock.Any()).Return("tok", nil)
	gw.EXPECT().GetTransactionStatus(gomock.Any(), "tok", "track-1").Return(completedStatus(), nil)
	cache.EXPECT().Set(gomock.Any(), "track-1", gomock.Any(), statusCacheTTL).Return(nil)

	svc := NewStatusService(gw, tokens, cache, zerolog.Nop())

	status, err := svc.Status(context.Background(), "track-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.StatusCode)
}

func TestStatusService_CacheErrorsAreNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "track-1").Return(nil, errors.New("redis down"))
	tokens.EXPECT().Token(gomock.Any()).Return("tok", nil)
	gw.EXPECT().GetTransactionStatus(gomock.Any(), "tok", "track-1").Return(completedStatus(), nil)
	cache.EXPECT().Set(gomock.Any(), "track-1", gomock.Any(), statusCacheTTL).Return(errors.New("redis down"))

	svc := NewStatusService(gw, tokens, cache, zerolog.Nop())

	status, err := svc.Status(context.Background(), "track-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.StatusCode)
}

func TestStatusService_GatewayFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)

	tokens.EXPECT().Token(gomock.Any()).Return("tok", nil)
	gw.EXPECT().GetTransactionStatus(gomock.Any(), "tok", "track-1").
		Return(nil, errors.New("gateway unreachable"))

	svc := NewStatusService(gw, tokens, nil, zerolog.Nop())

	_, err := svc.Status(context.Background(), "track-1")
	assertAppError(t, err, "STS_001")
}

func TestStatusService_TokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockGateway(ctrl)
	tokens := mocks.NewMockTokenProvider(ctrl)

	tokens.EXPECT().Token(gomock.Any()).Return("", errors.New("auth down"))

	svc := NewStatusService(gw, tokens, nil, zerolog.Nop())

	_, err := svc.Status(context.Background(), "track-1")
	assertAppError(t, err, "STS_001")
}
