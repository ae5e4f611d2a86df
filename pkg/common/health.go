package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime,omitempty"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus represents the status of a single health check
type CheckStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

var startTime = time.Now()

// HealthCheck returns a health check handler
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
		})
	}
}

// ReadinessProbe returns a readiness check with dependency validation.
// It checks critical dependencies (database, redis) and reports 503 when any fails.
func ReadinessProbe(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		checkResults := make(map[string]CheckStatus)
		now := time.Now().UTC()

		for name, checkFunc := range checks {
			if err := checkFunc(); err != nil {
				checkResults[name] = CheckStatus{
					Status:    "unhealthy",
					Message:   err.Error(),
					Timestamp: now.Format(time.RFC3339),
				}
				status = "not ready"
			} else {
				checkResults[name] = CheckStatus{
					Status:    "healthy",
					Timestamp: now.Format(time.RFC3339),
				}
			}
		}

		statusCode := http.StatusOK
		if status != "ready" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, HealthResponse{
			Status:    status,
			Service:   serviceName,
			Version:   version,
			Timestamp: now.Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
			Checks:    checkResults,
		})
	}
}
