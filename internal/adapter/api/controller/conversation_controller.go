package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	chatservice "github.com/hugohenrick/assistant-juridique/internal/service/chat"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// ConversationController expõe o histórico de conversas
type ConversationController struct {
	conversations *chatservice.ConversationService
	logger        logger.Logger
}

// NewConversationController cria uma nova instância de ConversationController
func NewConversationController(conversations *chatservice.ConversationService, log logger.Logger) *ConversationController {
	return &ConversationController{conversations: conversations, logger: log}
}

// List lista as conversas do cliente conectado
// @Summary Lista as conversas
// @Tags conversations
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ConversationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /conversations [get]
func (c *ConversationController) List(ctx *gin.Context) {
	list, err := c.conversations.List(ctx.Request.Context(), auth.SessionFrom(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConversationResponses(list))
}

// Messages retorna as mensagens de uma conversa
// @Summary Mensagens de uma conversa
// @Tags conversations
// @Produce json
// @Param id path string true "ID da conversa"
// @Success 200 {object} dto.MessagesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /conversations/{id}/messages [get]
func (c *ConversationController) Messages(ctx *gin.Context) {
	id := ctx.Param("id")

	msgs, err := c.conversations.Messages(ctx.Request.Context(), auth.SessionFrom(ctx), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMessagesResponse(id, msgs))
}
