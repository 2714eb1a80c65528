package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/controller"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
)

// SetupChatRoutes configura as rotas do chat e do histórico.
// limiter é aplicado apenas ao envio de perguntas; pode ser nil.
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController, conversationController *controller.ConversationController, limiter gin.HandlerFunc) {
	chatRouter := router.Group("/chat")
	{
		if limiter != nil {
			chatRouter.POST("", limiter, chatController.Send)
		} else {
			chatRouter.POST("", chatController.Send)
		}
		chatRouter.GET("/quota", chatController.Quota)
	}

	conversationsRouter := router.Group("/conversations")
	{
		conversationsRouter.GET("", auth.RequireSession(), conversationController.List)
		conversationsRouter.GET("/:id/messages", conversationController.Messages)
	}
}
