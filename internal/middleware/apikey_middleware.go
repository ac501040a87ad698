// internal/middleware/apikey_middleware.go
package middleware

import (
	"crypto/subtle"
	"net/http"

	"loyalty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware guards every /api route with a static key check.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(apiKeyHeader)
		if provided == "" {
			response.Error(c, http.StatusUnauthorized, "API Key is missing.")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.Error(c, http.StatusUnauthorized, "Invalid API Key.")
			return
		}

		c.Next()
	}
}
