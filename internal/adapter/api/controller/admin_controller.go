package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/service/admin"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// AdminController expõe o painel administrativo
type AdminController struct {
	dashboard *admin.DashboardService
	logger    logger.Logger
}

// NewAdminController cria uma nova instância de AdminController
func NewAdminController(dashboard *admin.DashboardService, log logger.Logger) *AdminController {
	return &AdminController{dashboard: dashboard, logger: log}
}

// Stats retorna as estatísticas de uso
// @Summary Estatísticas do painel
// @Description Totais, cadastros e conversas recentes, atividade por cliente e perguntas por dia (7 dias)
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} stats.Dashboard
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	dashboard, err := c.dashboard.Build(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}
