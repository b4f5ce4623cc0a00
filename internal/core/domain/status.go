package domain

import "time"

// StatusCode is the gateway-defined transaction state. The values are
// PesaPal's; this service passes them through without reinterpretation.
type StatusCode int

const (
	StatusInvalid   StatusCode = 0
	StatusCompleted StatusCode = 1
	StatusFailed    StatusCode = 2
	StatusReversed  StatusCode = 3
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalid:
		return "INVALID"
	case StatusCompleted:
		return "COMPLETED"
	case StatusFailed:
		return "FAILED"
	case StatusReversed:
		return "REVERSED"
	default:
		return "UNKNOWN"
	}
}

// TransactionStatus is the read-only snapshot returned by the gateway's
// GetTransactionStatus endpoint. Field names follow the PesaPal v3 wire
// format; the full shape is relayed to HTTP clients verbatim.
type TransactionStatus struct {
	PaymentMethod            string     `json:"payment_method"`
	Amount                   float64    `json:"amount"`
	CreatedDate              string     `json:"created_date"`
	ConfirmationCode         string     `json:"confirmation_code"`
	PaymentStatusDescription string     `json:"payment_status_description"`
	Description              string     `json:"description"`
	Message                  string     `json:"message"`
	PaymentAccount           string     `json:"payment_account"`
	CallBackURL              string     `json:"call_back_url"`
	StatusCode               StatusCode `json:"status_code"`
	MerchantReference        string     `json:"merchant_reference"`
	Currency                 string     `json:"currency"`
}

// ReconciliationRecord is what the IPN path hands to the persistence
// layer once a notification has been reconciled against the gateway.
type ReconciliationRecord struct {
	OrderTrackingID   string     `json:"order_tracking_id"`
	MerchantReference string     `json:"merchant_reference"`
	StatusCode        StatusCode `json:"status_code"`
	Description       string     `json:"description"`
	Amount            float64    `json:"amount"`
	PaymentMethod     string     `json:"payment_method"`
	ConfirmationCode  string     `json:"confirmation_code"`
	ReconciledAt      time.Time  `json:"reconciled_at"`
}

// NewReconciliationRecord builds a record from a status snapshot. The
// merchant reference from the notification wins when the snapshot omits it.
func NewReconciliationRecord(trackingID, merchantRef string, st *TransactionStatus, now time.Time) *ReconciliationRecord {
	if st.MerchantReference != "" {
		merchantRef = st.MerchantReference
	}
	return &ReconciliationRecord{
		OrderTrackingID:   trackingID,
		MerchantReference: merchantRef,
		StatusCode:        st.StatusCode,
		Description:       st.PaymentStatusDescription,
		Amount:            st.Amount,
		PaymentMethod:     st.PaymentMethod,
		ConfirmationCode:  st.ConfirmationCode,
		ReconciledAt:      now.UTC(),
	}
}
