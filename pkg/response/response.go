package response

import (
	"errors"
	"net/http"

	"impact360-payments/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"` // Upstream payload, verbose mode only
	RequestID string      `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500. When includeDetail is set,
// the raw upstream payload (if any) is included in the body.
func Error(c *gin.Context, err error, includeDetail bool) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body := ErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			RequestID: getRequestID(c),
		}
		if includeDetail && appErr.Detail != nil {
			body.Error = appErr.Detail
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success:   false,
		Message:   "Internal server error",
		RequestID: getRequestID(c),
	})
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
