package handler

import (
	"errors"
	"net/http"

	"impact360-payments/internal/adapter/http/dto"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// IPNHandler receives the gateway's asynchronous payment notifications.
// Responses are plain text: the gateway only needs an acknowledgment of
// receipt, and a server error triggers its redelivery.
type IPNHandler struct {
	ipnSvc ports.IPNService
	log    zerolog.Logger
}

// NewIPNHandler creates a new IPNHandler.
func NewIPNHandler(ipnSvc ports.IPNService, log zerolog.Logger) *IPNHandler {
	return &IPNHandler{ipnSvc: ipnSvc, log: log}
}

// HandleGet handles GET /pesapal-ipn (query string delivery).
func (h *IPNHandler) HandleGet(c *gin.Context) {
	var req dto.IPNRequest
	_ = c.ShouldBindQuery(&req)
	h.handle(c, req)
}

// HandlePost handles POST /pesapal-ipn (body delivery, JSON or form).
func (h *IPNHandler) HandlePost(c *gin.Context) {
	var req dto.IPNRequest
	_ = c.ShouldBind(&req)
	h.handle(c, req)
}

func (h *IPNHandler) handle(c *gin.Context, req dto.IPNRequest) {
	_, err := h.ipnSvc.HandleNotification(c.Request.Context(), ports.Notification{
		OrderTrackingID:   req.OrderTrackingID,
		MerchantReference: req.OrderMerchantReference,
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusBadRequest {
			c.String(http.StatusBadRequest, "Missing OrderTrackingId")
			return
		}
		h.log.Error().Err(err).Msg("IPN processing failed")
		c.String(http.StatusInternalServerError, "Error processing IPN")
		return
	}

	c.String(http.StatusOK, "OK")
}
