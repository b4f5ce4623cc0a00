package handler

import (
	"net/http"

	"impact360-payments/internal/adapter/http/dto"
	"impact360-payments/internal/adapter/http/middleware"
	"impact360-payments/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	StatusSvc      ports.StatusService
	IPNSvc         ports.IPNService
	HealthCheckers []ports.HealthChecker
	Environment    string // sandbox or production, reported on the root route
	FrontendOrigin string // allowed CORS origin; empty disables CORS
	VerboseErrors  bool
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	if deps.FrontendOrigin != "" {
		r.Use(middleware.CORS(deps.FrontendOrigin))
	}

	// Root info route
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.ServiceInfoResponse{
			Message:     "PesaPal Integration Server Running!",
			Environment: deps.Environment,
			Endpoints: map[string]string{
				"createPayment": "POST /api/create-payment",
				"paymentStatus": "GET /api/payment-status/:orderTrackingId",
				"ipnListener":   "GET /pesapal-ipn",
			},
		})
	})

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Payment API
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.StatusSvc, deps.VerboseErrors)
	api := r.Group("/api")
	{
		api.POST("/create-payment", paymentHandler.CreatePayment)
		api.GET("/payment-status/:orderTrackingId", paymentHandler.PaymentStatus)
	}

	// Gateway-invoked IPN callback, both delivery shapes
	ipnHandler := NewIPNHandler(deps.IPNSvc, deps.Logger)
	r.GET("/pesapal-ipn", ipnHandler.HandleGet)
	r.POST("/pesapal-ipn", ipnHandler.HandlePost)

	return r
}
