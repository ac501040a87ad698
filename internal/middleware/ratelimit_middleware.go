// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"loyalty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces a fixed-window per-client request limit
// backed by Redis. With a nil client (Redis disabled) it is a no-op.
// Redis failures let the request through; limiting is best effort.
func RateLimitMiddleware(client *redis.Client, maxPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || maxPerMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:api:%s", c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}

		if count > int64(maxPerMinute) {
			response.Error(c, http.StatusTooManyRequests, "Demasiadas solicitudes. Intente nuevamente más tarde.")
			return
		}

		c.Next()
	}
}
