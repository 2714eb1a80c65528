package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// RequestLogger registra método, rota, status e latência de cada requisição
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("requisição falhou", fields...)
		case status >= 400:
			log.Warn("requisição rejeitada", fields...)
		default:
			log.Info("requisição atendida", fields...)
		}
	}
}
