package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{Validation("Missing required fields"), "VAL_001", http.StatusBadRequest},
		{Authentication(cause), "AUTH_001", http.StatusInternalServerError},
		{ChannelResolution(cause), "CHN_001", http.StatusInternalServerError},
		{PaymentCreation("", cause), "PAY_001", http.StatusInternalServerError},
		{StatusQuery(cause), "STS_001", http.StatusInternalServerError},
		{InternalError(cause), "SYS_001", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
		assert.NotEmpty(t, tc.err.Message)
	}
}

func TestPaymentCreation_MessageFallback(t *testing.T) {
	assert.Equal(t, "Failed to create payment", PaymentCreation("", nil).Message)
	assert.Equal(t, "Amount is invalid", PaymentCreation("Amount is invalid", nil).Message)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Authentication(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[VAL_001] Missing orderTrackingId", Validation("Missing orderTrackingId").Error())
	wrapped := StatusQuery(errors.New("boom"))
	assert.Equal(t, "[STS_001] Failed to check payment status: boom", wrapped.Error())
}

type detailedErr struct {
	payload interface{}
}

func (e *detailedErr) Error() string               { return "upstream failed" }
func (e *detailedErr) UpstreamDetail() interface{} { return e.payload }

func TestWrap_ExtractsDetailFromChain(t *testing.T) {
	payload := map[string]string{"code": "duplicate"}
	inner := &detailedErr{payload: payload}

	err := Wrap("PAY_001", "Failed to create payment", http.StatusInternalServerError, inner)
	assert.Equal(t, payload, err.Detail)

	// Also through intermediate wrapping.
	err = StatusQuery(errors.Join(errors.New("context"), inner))
	assert.Equal(t, payload, err.Detail)
}

func TestDetailOf(t *testing.T) {
	assert.Nil(t, DetailOf(nil))
	assert.Nil(t, DetailOf(errors.New("plain")))

	inner := &detailedErr{payload: "raw body"}
	assert.Equal(t, "raw body", DetailOf(inner))
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad input").WithDetail("field: amount")
	require.Equal(t, "field: amount", err.Detail)
}
