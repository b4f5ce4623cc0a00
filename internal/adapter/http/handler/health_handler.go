package handler

import (
	"context"
	"net/http"
	"time"

	"impact360-payments/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 3 * time.Second

// HealthCheck returns a handler that pings every dependency. Any failure
// yields 503 with per-dependency detail.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := make(map[string]string, len(checkers))
		healthy := true

		for _, checker := range checkers {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			if err := checker.Ping(ctx); err != nil {
				deps[checker.Name()] = err.Error()
				healthy = false
			} else {
				deps[checker.Name()] = "ok"
			}
			cancel()
		}

		status := http.StatusOK
		state := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}

		c.JSON(status, gin.H{
			"status":       state,
			"dependencies": deps,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
