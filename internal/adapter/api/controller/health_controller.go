package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
)

// Pinger verifica uma dependência externa
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController informa o estado da API
type HealthController struct {
	db      Pinger
	version string
}

// NewHealthController cria uma nova instância de HealthController
func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Check verifica a API e o banco de dados
// @Summary Estado da API
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	response := dto.HealthResponse{Status: "ok", Version: c.version, Database: "ok"}
	if err := c.db.Ping(pingCtx); err != nil {
		response.Status = "degraded"
		response.Database = "unavailable"
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
