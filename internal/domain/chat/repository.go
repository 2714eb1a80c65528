package chat

import (
	"context"
)

// Repository define a persistência de conversas e mensagens
type Repository interface {
	// Create cria uma nova conversa
	Create(ctx context.Context, c *Conversation) error

	// FindByID busca uma conversa pelo ID
	FindByID(ctx context.Context, id string) (*Conversation, error)

	// ListByUser lista as conversas de um usuário, da mais recente para a mais antiga
	ListByUser(ctx context.Context, userID string) ([]ConversationSummary, error)

	// Messages retorna as mensagens da conversa em ordem de criação
	Messages(ctx context.Context, conversationID string) ([]Message, error)

	// CountUserMessages conta as perguntas (mensagens com role user) da conversa
	CountUserMessages(ctx context.Context, conversationID string) (int, error)

	// AppendExchange grava a pergunta e a resposta de uma troca de forma atômica.
	// ownerID é o dono esperado da conversa ("" para visitantes); se o dono gravado
	// for outro, ErrConversationNotFound é retornado. Quando questionLimit > 0 a
	// contagem de perguntas é refeita dentro da mesma transação e ErrQuotaExceeded
	// é retornado se o limite já tiver sido atingido.
	AppendExchange(ctx context.Context, conversationID, ownerID string, question, answer *Message, questionLimit int) error

	// SetThreadID associa a thread do assistente externo à conversa; vazio desassocia
	SetThreadID(ctx context.Context, conversationID, threadID string) error

	// AssignOwner associa uma conversa de visitante a um usuário
	AssignOwner(ctx context.Context, conversationID, userID string) error
}
