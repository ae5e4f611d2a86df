package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS middleware handles Cross-Origin Resource Sharing.
// Allowed origins come from config (comma-separated); falls back to the
// development frontend origin.
func CORS(origins string) gin.HandlerFunc {
	if origins == "" {
		origins = "http://localhost:3000"
	}

	allowed := make([]string, 0)
	for _, o := range strings.Split(origins, ",") {
		allowed = append(allowed, strings.TrimSpace(o))
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
