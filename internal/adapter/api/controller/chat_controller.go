package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	chatservice "github.com/hugohenrick/assistant-juridique/internal/service/chat"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// ChatController gerencia as perguntas enviadas ao assistente
type ChatController struct {
	gate          *chatservice.QuotaGate
	conversations *chatservice.ConversationService
	logger        logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(gate *chatservice.QuotaGate, conversations *chatservice.ConversationService, log logger.Logger) *ChatController {
	return &ChatController{
		gate:          gate,
		conversations: conversations,
		logger:        log,
	}
}

// Send envia uma pergunta ao assistente
// @Summary Envia uma pergunta
// @Description Visitantes têm direito a um número limitado de perguntas por conversa; depois disso é preciso se conectar
// @Tags chat
// @Accept json
// @Produce json
// @Param chat body dto.ChatRequest true "Pergunta"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var request dto.ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidData, err.Error()))
		return
	}

	result, err := c.gate.Send(ctx.Request.Context(), chatservice.SendRequest{
		Session:        auth.SessionFrom(ctx),
		ConversationID: request.ConversationID,
		Text:           request.Message,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatResponse(result))
}

// Quota retorna as perguntas gratuitas restantes
// @Summary Consulta a cota gratuita
// @Tags chat
// @Produce json
// @Param conversationId query string false "ID da conversa"
// @Success 200 {object} dto.QuotaResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chat/quota [get]
func (c *ChatController) Quota(ctx *gin.Context) {
	status, err := c.conversations.Quota(ctx.Request.Context(), auth.SessionFrom(ctx), ctx.Query("conversationId"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQuotaResponse(status))
}
