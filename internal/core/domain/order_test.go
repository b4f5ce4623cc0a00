package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Jane van der Berg", "Jane", "van der Berg"},
		{"  Jane   Doe  ", "Jane", "Doe"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := SplitName(tc.in)
		assert.Equal(t, tc.first, first, "input %q", tc.in)
		assert.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestPaymentOrder_WireFormat(t *testing.T) {
	order := PaymentOrder{
		ID:             "IMPACT360_1700000000000_ab12cd",
		Currency:       "KES",
		Amount:         100.5,
		Description:    "Impact360 Pro Subscription - monthly",
		CallbackURL:    "https://impact360.example/payment-callback",
		NotificationID: "ipn-123",
		BillingAddress: BillingAddress{
			EmailAddress: "jane@x.com",
			PhoneNumber:  "254712345678",
			CountryCode:  "KE",
			FirstName:    "Jane",
			LastName:     "Doe",
		},
	}

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "IMPACT360_1700000000000_ab12cd", decoded["id"])
	assert.Equal(t, "ipn-123", decoded["notification_id"])
	assert.Equal(t, 100.5, decoded["amount"])

	billing := decoded["billing_address"].(map[string]interface{})
	assert.Equal(t, "254712345678", billing["phone_number"])
	assert.Equal(t, "Jane", billing["first_name"])
	assert.Equal(t, "Doe", billing["last_name"])
}

func TestCredential_Valid(t *testing.T) {
	now := time.Now()
	margin := time.Minute

	var nilCred *Credential
	assert.False(t, nilCred.Valid(now, margin))
	assert.False(t, (&Credential{}).Valid(now, margin))

	cred := &Credential{Token: "tok", ExpiresAt: now.Add(5 * time.Minute)}
	assert.True(t, cred.Valid(now, margin))
	// Inside the safety margin the token is treated as expired.
	assert.False(t, cred.Valid(now.Add(4*time.Minute+30*time.Second), margin))
	assert.False(t, cred.Valid(now.Add(6*time.Minute), margin))
}

func TestStatusCode_String(t *testing.T) {
	assert.Equal(t, "INVALID", StatusInvalid.String())
	assert.Equal(t, "COMPLETED", StatusCompleted.String())
	assert.Equal(t, "FAILED", StatusFailed.String())
	assert.Equal(t, "REVERSED", StatusReversed.String())
	assert.Equal(t, "UNKNOWN", StatusCode(42).String())
}

func TestNewReconciliationRecord(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := &TransactionStatus{
		PaymentMethod:            "MpesaKE",
		Amount:                   100.5,
		ConfirmationCode:         "QWE123",
		PaymentStatusDescription: "Completed",
		StatusCode:               StatusCompleted,
		MerchantReference:        "IMPACT360_1_abc",
	}

	rec := NewReconciliationRecord("track-1", "ignored-ref", st, now)
	assert.Equal(t, "track-1", rec.OrderTrackingID)
	// The snapshot's merchant reference wins over the notification's.
	assert.Equal(t, "IMPACT360_1_abc", rec.MerchantReference)
	assert.Equal(t, StatusCompleted, rec.StatusCode)
	assert.Equal(t, "QWE123", rec.ConfirmationCode)
	assert.Equal(t, now, rec.ReconciledAt)

	// Notification reference is kept when the snapshot omits one.
	st.MerchantReference = ""
	rec = NewReconciliationRecord("track-1", "notif-ref", st, now)
	assert.Equal(t, "notif-ref", rec.MerchantReference)
}
