package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/controller"
)

// SetupHealthRoutes configura a rota de verificação de saúde
func SetupHealthRoutes(router *gin.RouterGroup, healthController *controller.HealthController) {
	router.GET("/health", healthController.Check)
}
