package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string      `json:"error_code"`
	Message    string      `json:"message"`
	HTTPStatus int         `json:"-"`
	Detail     interface{} `json:"-"` // Raw upstream payload (exposed only in verbose mode)
	Err        error       `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches the raw upstream payload for diagnostics.
func (e *AppError) WithDetail(detail interface{}) *AppError {
	e.Detail = detail
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError. Any upstream payload
// found in the chain is carried along for diagnostics.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Detail:     DetailOf(err),
		Err:        err,
	}
}

// Detailer is implemented by errors that carry a raw upstream payload
// (e.g. a gateway response body).
type Detailer interface {
	UpstreamDetail() interface{}
}

// DetailOf extracts the upstream payload from an error chain, or nil.
func DetailOf(err error) interface{} {
	var d Detailer
	if errors.As(err, &d) {
		return d.UpstreamDetail()
	}
	return nil
}

// ---- Input Validation (VAL) ----

// Validation returns a 400 error for missing or malformed input.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Gateway Authentication (AUTH) ----

// Authentication signals that the gateway rejected our credentials or
// returned a token-less response. Dependent gateway operations must not
// proceed.
func Authentication(err error) *AppError {
	return Wrap("AUTH_001", "Failed to authenticate with PesaPal", http.StatusInternalServerError, err)
}

// ---- Notification Channel (CHN) ----

// ChannelResolution signals that the IPN channel could not be registered or
// located. Order submission is blocked until it resolves.
func ChannelResolution(err error) *AppError {
	return Wrap("CHN_001", "Could not resolve IPN notification channel", http.StatusInternalServerError, err)
}

// ---- Order Submission (PAY) ----

// PaymentCreation surfaces an order submission failure. message may carry
// the gateway's own message; empty falls back to a generic one.
func PaymentCreation(message string, err error) *AppError {
	if message == "" {
		message = "Failed to create payment"
	}
	return Wrap("PAY_001", message, http.StatusInternalServerError, err)
}

// ---- Status Query (STS) ----

// StatusQuery surfaces a transaction status lookup failure.
func StatusQuery(err error) *AppError {
	return Wrap("STS_001", "Failed to check payment status", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
