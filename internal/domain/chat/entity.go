package chat

import (
	"errors"
	"time"
)

// Role representa o autor de uma mensagem
type Role string

// Constantes para Role
const (
	RoleUser      Role = "user"      // Pergunta do visitante
	RoleAssistant Role = "assistant" // Resposta do assistente jurídico
)

// GuestSessionPrefix identifica as conversas de visitantes não conectados
const GuestSessionPrefix = "guest-"

// Erros do domínio de chat
var (
	ErrConversationNotFound = errors.New("conversa não encontrada")
	ErrQuotaExceeded        = errors.New("limite de perguntas gratuitas atingido")
	ErrOwnerAlreadySet      = errors.New("conversa já pertence a um usuário")
)

// Conversation representa uma conversa com o assistente
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"` // vazio para conversas de visitantes
	SessionID string    `json:"session_id"`
	ThreadID  string    `json:"-"` // thread do assistente externo, reutilizada a cada troca
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGuest informa se a conversa não pertence a nenhum usuário
func (c *Conversation) IsGuest() bool {
	return c.UserID == ""
}

// AccessibleBy verifica se a sessão pode ler ou escrever na conversa.
// Visitantes só acessam conversas sem dono; usuários acessam as suas e as de visitantes.
func (c *Conversation) AccessibleBy(s Session) bool {
	if c.IsGuest() {
		return true
	}
	return s.IsAuthenticated() && s.UserID == c.UserID
}

// Message representa uma mensagem imutável de uma conversa
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationSummary resume uma conversa para listagens
type ConversationSummary struct {
	Conversation
	MessageCount int       `json:"message_count"`
	LastMessage  time.Time `json:"last_message_at"`
}

// CountQuestions conta as mensagens do usuário numa sequência
func CountQuestions(messages []Message) int {
	count := 0
	for _, m := range messages {
		if m.Role == RoleUser {
			count++
		}
	}
	return count
}
