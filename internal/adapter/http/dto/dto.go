package dto

import "encoding/json"

// CreatePaymentRequest is the request body for POST /api/create-payment.
// Field names match what the subscription page sends. Amount is a
// json.Number so both "100.50" and 100.50 bind.
type CreatePaymentRequest struct {
	Plan     string      `json:"plan" binding:"required"`
	Amount   json.Number `json:"amount" binding:"required"`
	Period   string      `json:"period"`
	FullName string      `json:"fullName" binding:"required"`
	Phone    string      `json:"phone" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
}

// IPNRequest is the gateway's notification, delivered either as a query
// string (GET) or a body (POST). Field names are PesaPal's.
type IPNRequest struct {
	OrderTrackingID        string `form:"OrderTrackingId" json:"OrderTrackingId"`
	OrderMerchantReference string `form:"OrderMerchantReference" json:"OrderMerchantReference"`
	OrderNotificationType  string `form:"OrderNotificationType" json:"OrderNotificationType"`
}

// ServiceInfoResponse is the root route body.
type ServiceInfoResponse struct {
	Message     string            `json:"message"`
	Environment string            `json:"environment"`
	Endpoints   map[string]string `json:"endpoints"`
}
