package domain

import "strings"

// PaymentOrder is the order submitted to the gateway's
// SubmitOrderRequest endpoint. Field names follow the PesaPal v3 wire
// format.
type PaymentOrder struct {
	ID             string         `json:"id"` // merchant reference, unique per attempt
	Currency       string         `json:"currency"`
	Amount         float64        `json:"amount"`
	Description    string         `json:"description"`
	CallbackURL    string         `json:"callback_url"`
	NotificationID string         `json:"notification_id"`
	BillingAddress BillingAddress `json:"billing_address"`
}

// BillingAddress identifies the buyer on a PaymentOrder.
type BillingAddress struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	CountryCode  string `json:"country_code"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	LastName     string `json:"last_name"`
	Line1        string `json:"line_1"`
	Line2        string `json:"line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	ZipCode      string `json:"zip_code"`
}

// OrderReceipt is the gateway's answer to a submitted order, returned to
// the client unchanged.
type OrderReceipt struct {
	OrderTrackingID   string `json:"order_tracking_id"`
	MerchantReference string `json:"merchant_reference"`
	RedirectURL       string `json:"redirect_url"`
}

// SplitName splits a full name into first and last parts the way the
// gateway's billing address expects: first word is the first name, the
// remainder joins into the last name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
