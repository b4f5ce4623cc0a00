package handler

import (
	"impact360-payments/internal/adapter/http/dto"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"
	"impact360-payments/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment creation and status endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	statusSvc  ports.StatusService
	verbose    bool
}

// NewPaymentHandler creates a new PaymentHandler. verbose controls
// whether raw gateway payloads appear in error responses.
func NewPaymentHandler(paymentSvc ports.PaymentService, statusSvc ports.StatusService, verbose bool) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, statusSvc: statusSvc, verbose: verbose}
}

// CreatePayment handles POST /api/create-payment.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Missing required fields"), h.verbose)
		return
	}

	receipt, err := h.paymentSvc.CreateOrder(c.Request.Context(), ports.CreateOrderRequest{
		Plan:     req.Plan,
		Amount:   req.Amount.String(),
		Period:   req.Period,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		response.Error(c, err, h.verbose)
		return
	}

	response.OK(c, "Payment initiated successfully", receipt)
}

// PaymentStatus handles GET /api/payment-status/:orderTrackingId.
func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	orderTrackingID := c.Param("orderTrackingId")
	if orderTrackingID == "" {
		response.Error(c, apperror.Validation("Missing orderTrackingId"), h.verbose)
		return
	}

	status, err := h.statusSvc.Status(c.Request.Context(), orderTrackingID)
	if err != nil {
		response.Error(c, err, h.verbose)
		return
	}

	response.OK(c, "", status)
}
