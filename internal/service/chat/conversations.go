package chat

import (
	"context"
	"errors"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/pkg/apperror"
)

// QuotaStatus descreve quantas perguntas gratuitas restam numa conversa
type QuotaStatus struct {
	Limit     int
	Used      int
	Remaining int // Unlimited para usuários conectados
}

// ConversationService expõe as leituras de conversas respeitando a posse
type ConversationService struct {
	repo              chat.Repository
	freeQuestionLimit int
}

// NewConversationService cria um novo ConversationService
func NewConversationService(repo chat.Repository, freeQuestionLimit int) *ConversationService {
	return &ConversationService{repo: repo, freeQuestionLimit: freeQuestionLimit}
}

// List lista as conversas do usuário conectado
func (s *ConversationService) List(ctx context.Context, session chat.Session) ([]chat.ConversationSummary, error) {
	if !session.IsAuthenticated() {
		return nil, apperror.New(apperror.CodeUnauthorized, "Authentification requise")
	}
	list, err := s.repo.ListByUser(ctx, session.UserID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao listar conversas")
	}
	return list, nil
}

// Messages retorna as mensagens de uma conversa acessível pela sessão
func (s *ConversationService) Messages(ctx context.Context, session chat.Session, conversationID string) ([]chat.Message, error) {
	if _, err := s.accessible(ctx, session, conversationID); err != nil {
		return nil, err
	}
	msgs, err := s.repo.Messages(ctx, conversationID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao carregar mensagens")
	}
	return msgs, nil
}

// Quota informa a cota restante. Sem conversa, a cota de um visitante está cheia.
func (s *ConversationService) Quota(ctx context.Context, session chat.Session, conversationID string) (QuotaStatus, error) {
	if session.IsAuthenticated() {
		return QuotaStatus{Limit: Unlimited, Remaining: Unlimited}, nil
	}

	status := QuotaStatus{Limit: s.freeQuestionLimit, Remaining: s.freeQuestionLimit}
	if conversationID == "" {
		return status, nil
	}

	if _, err := s.accessible(ctx, session, conversationID); err != nil {
		return QuotaStatus{}, err
	}
	used, err := s.repo.CountUserMessages(ctx, conversationID)
	if err != nil {
		return QuotaStatus{}, apperror.Wrap(err, apperror.CodeInternal, "falha ao contar perguntas")
	}

	status.Used = used
	status.Remaining = max(s.freeQuestionLimit-used, 0)
	return status, nil
}

func (s *ConversationService) accessible(ctx context.Context, session chat.Session, conversationID string) (*chat.Conversation, error) {
	conv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, chat.ErrConversationNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao buscar conversa")
	}
	if !conv.AccessibleBy(session) {
		return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
	}
	return conv, nil
}
