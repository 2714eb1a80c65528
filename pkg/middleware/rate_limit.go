package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// RateCounter é o subconjunto do cliente Redis usado pelo limitador
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimit limita cada IP a qps requisições por segundo (janela fixa no Redis).
// Se o Redis falhar a requisição segue sem limite.
func RateLimit(counter RateCounter, qps int, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		count, err := counter.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("limitador indisponível", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			counter.Expire(ctx, key, time.Second)
		}

		if count > int64(qps) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				"Trop de requêtes, veuillez réessayer dans un instant",
				gin.H{"qps": qps},
			))
			return
		}
		c.Next()
	}
}
