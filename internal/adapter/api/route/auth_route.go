package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/controller"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/signup", authController.Signup)
		authRouter.POST("/signin", authController.Signin)
		authRouter.POST("/signout", authController.Signout)

		// Requer sessão aberta
		authRouter.GET("/me", auth.RequireSession(), authController.Me)
	}
}
