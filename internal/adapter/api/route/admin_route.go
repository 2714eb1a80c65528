package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/controller"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
)

// SetupAdminRoutes configura as rotas do painel administrativo
func SetupAdminRoutes(router *gin.RouterGroup, adminController *controller.AdminController) {
	adminRouter := router.Group("/admin")
	adminRouter.Use(auth.RequireAdmin())
	{
		adminRouter.GET("/stats", adminController.Stats)
	}
}
