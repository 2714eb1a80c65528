package dto

import (
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	chatservice "github.com/hugohenrick/assistant-juridique/internal/service/chat"
)

// ChatRequest representa uma pergunta enviada ao assistente
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

// ChatResponse representa a resposta do assistente
type ChatResponse struct {
	Response           string `json:"response"`
	ConversationID     string `json:"conversationId"`
	RemainingQuestions *int   `json:"remainingQuestions,omitempty"`
}

// ConversationResponse representa uma conversa na listagem
type ConversationResponse struct {
	ID            string    `json:"id"`
	MessageCount  int       `json:"messageCount"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MessageItem representa uma mensagem de uma conversa
type MessageItem struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessagesResponse representa as mensagens de uma conversa
type MessagesResponse struct {
	ConversationID string        `json:"conversationId"`
	Messages       []MessageItem `json:"messages"`
}

// QuotaResponse representa a cota de perguntas gratuitas
type QuotaResponse struct {
	Limited            bool `json:"limited"`
	Limit              int  `json:"limit,omitempty"`
	Used               int  `json:"used"`
	RemainingQuestions *int `json:"remainingQuestions,omitempty"`
}

// ToChatResponse converte o resultado de uma troca para DTO de resposta
func ToChatResponse(r *chatservice.SendResult) ChatResponse {
	resp := ChatResponse{
		Response:       r.Response,
		ConversationID: r.ConversationID,
	}
	if r.RemainingQuestions != chatservice.Unlimited {
		remaining := r.RemainingQuestions
		resp.RemainingQuestions = &remaining
	}
	return resp
}

// ToConversationResponses converte a listagem de conversas
func ToConversationResponses(list []chat.ConversationSummary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ConversationResponse{
			ID:            c.ID,
			MessageCount:  c.MessageCount,
			LastMessageAt: c.LastMessage,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return out
}

// ToMessagesResponse converte as mensagens de uma conversa
func ToMessagesResponse(conversationID string, msgs []chat.Message) MessagesResponse {
	items := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, MessageItem{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return MessagesResponse{ConversationID: conversationID, Messages: items}
}

// ToQuotaResponse converte a cota da sessão
func ToQuotaResponse(q chatservice.QuotaStatus) QuotaResponse {
	if q.Remaining == chatservice.Unlimited {
		return QuotaResponse{Limited: false, Used: q.Used}
	}
	remaining := q.Remaining
	return QuotaResponse{Limited: true, Limit: q.Limit, Used: q.Used, RemainingQuestions: &remaining}
}
