package pesapal

import "fmt"

// apiError is the gateway's structured error object, present (non-null)
// on failed calls.
type apiError struct {
	ErrorType string `json:"error_type"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// authResponse is the body of Auth/RequestToken.
type authResponse struct {
	Token      string    `json:"token"`
	ExpiryDate string    `json:"expiryDate"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Error      *apiError `json:"error"`
}

// ipnRegistration is the body of URLSetup/RegisterIPN and each element of
// URLSetup/GetIpnList.
type ipnRegistration struct {
	URL                 string    `json:"url"`
	CreatedDate         string    `json:"created_date"`
	IPNID               string    `json:"ipn_id"`
	NotificationType    int       `json:"notification_type"`
	IPNNotificationType string    `json:"ipn_notification_type_description"`
	Status              string    `json:"status"`
	Error               *apiError `json:"error"`
}

// orderResponse is the body of Transactions/SubmitOrderRequest.
type orderResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Status            string    `json:"status"`
	Error             *apiError `json:"error"`
}

// RequestError carries the upstream HTTP status and decoded payload of a
// failed gateway call so callers can surface it for diagnostics.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Payload    interface{}
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pesapal %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pesapal %s: status %d", e.Endpoint, e.StatusCode)
}

// UpstreamDetail exposes the gateway payload to pkg/apperror's Detailer.
func (e *RequestError) UpstreamDetail() interface{} {
	if e.Payload != nil {
		return e.Payload
	}
	return e.Message
}
