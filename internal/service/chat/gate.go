package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/internal/service/completion"
	"github.com/hugohenrick/assistant-juridique/pkg/apperror"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// Unlimited indica que a sessão não está sujeita à cota gratuita
const Unlimited = -1

// cleanupTimeout limita as chamadas de limpeza feitas depois de uma troca perdida
const cleanupTimeout = 5 * time.Second

// Config contém as regras aplicadas pelo QuotaGate
type Config struct {
	FreeQuestionLimit int
	MaxMessageLength  int
	PollInterval      time.Duration
	CompletionTimeout time.Duration
}

// SendRequest é uma pergunta enviada ao chat
type SendRequest struct {
	Session        chat.Session
	ConversationID string
	Text           string
}

// SendResult é a resposta de uma troca bem-sucedida
type SendResult struct {
	Response           string
	ConversationID     string
	RemainingQuestions int // Unlimited para usuários conectados
}

// QuotaGate decide se uma pergunta pode ser encaminhada ao assistente e
// mantém o limite de perguntas gratuitas das conversas de visitantes.
type QuotaGate struct {
	repo      chat.Repository
	completer completion.Client
	locker    Locker
	cfg       Config
	logger    logger.Logger
	now       func() time.Time
}

// NewQuotaGate cria um novo QuotaGate
func NewQuotaGate(repo chat.Repository, completer completion.Client, locker Locker, cfg Config, log logger.Logger) *QuotaGate {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	return &QuotaGate{
		repo:      repo,
		completer: completer,
		locker:    locker,
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
	}
}

// QuotaExceededMessage é a mensagem exibida quando o visitante esgota a cota
func QuotaExceededMessage(limit int) string {
	if limit == 1 {
		return "Limite de 1 question gratuite atteinte. Veuillez vous connecter."
	}
	return fmt.Sprintf("Limite de %d questions gratuites atteinte. Veuillez vous connecter.", limit)
}

// Send processa uma pergunta: resolve a conversa, verifica a cota, consulta o
// assistente e grava pergunta e resposta juntas.
func (g *QuotaGate) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	text, err := g.validate(req.Text)
	if err != nil {
		return nil, err
	}
	receivedAt := g.now()

	conv, err := g.resolveConversation(ctx, req.Session, req.ConversationID)
	if err != nil {
		return nil, err
	}
	log := g.logger.With("conversation_id", conv.ID, "authenticated", req.Session.IsAuthenticated())

	unlock, err := g.locker.Lock(ctx, conv.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao obter lock da conversa")
	}
	defer unlock()

	// Estado relido sob o lock: outra requisição pode ter concluído uma troca
	conv, err = g.repo.FindByID(ctx, conv.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao recarregar conversa")
	}
	if req.Session.IsAuthenticated() && conv.IsGuest() {
		err := g.repo.AssignOwner(ctx, conv.ID, req.Session.UserID)
		switch {
		case err == nil:
			conv.UserID = req.Session.UserID
		case errors.Is(err, chat.ErrOwnerAlreadySet):
			// outra instância associou a conversa antes; vale o dono gravado
			conv, err = g.repo.FindByID(ctx, conv.ID)
			if err != nil {
				return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao recarregar conversa")
			}
		default:
			return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao associar conversa")
		}
	}
	if !conv.AccessibleBy(req.Session) {
		return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
	}

	history, err := g.repo.Messages(ctx, conv.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao carregar mensagens")
	}

	questionLimit := 0
	asked := chat.CountQuestions(history)
	if !req.Session.IsAuthenticated() {
		questionLimit = g.cfg.FreeQuestionLimit
		if asked >= questionLimit {
			log.Info("cota gratuita atingida", "questions", asked)
			return nil, apperror.New(apperror.CodeQuotaExceeded, QuotaExceededMessage(questionLimit))
		}
	}

	sub, answer, err := g.complete(ctx, conv, history, text, log)
	if err != nil {
		return nil, err
	}

	question := &chat.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           chat.RoleUser,
		Content:        text,
		CreatedAt:      receivedAt,
	}
	reply := &chat.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           chat.RoleAssistant,
		Content:        answer,
		CreatedAt:      g.now(),
	}
	if err := g.repo.AppendExchange(ctx, conv.ID, conv.UserID, question, reply, questionLimit); err != nil {
		// a thread já contém uma troca que não foi gravada
		g.discardThread(ctx, conv, sub, nil, log)
		switch {
		case errors.Is(err, chat.ErrQuotaExceeded):
			return nil, apperror.New(apperror.CodeQuotaExceeded, QuotaExceededMessage(questionLimit))
		case errors.Is(err, chat.ErrConversationNotFound):
			return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao gravar troca")
	}
	g.rememberThread(ctx, conv, sub.ThreadID, log)

	result := &SendResult{
		Response:           answer,
		ConversationID:     conv.ID,
		RemainingQuestions: Unlimited,
	}
	if !req.Session.IsAuthenticated() {
		result.RemainingQuestions = questionLimit - (asked + 1)
	}

	log.Info("pergunta respondida", "questions", asked+1)
	return result, nil
}

func (g *QuotaGate) validate(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", apperror.New(apperror.CodeValidation, "Le message ne peut pas être vide")
	}
	if utf8.RuneCountInString(text) > g.cfg.MaxMessageLength {
		return "", apperror.Errorf(apperror.CodeValidation,
			"Le message ne peut pas dépasser %d caractères", g.cfg.MaxMessageLength)
	}
	return text, nil
}

// resolveConversation busca a conversa informada ou cria uma nova
func (g *QuotaGate) resolveConversation(ctx context.Context, s chat.Session, id string) (*chat.Conversation, error) {
	if id != "" {
		conv, err := g.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, chat.ErrConversationNotFound) {
				return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
			}
			return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao buscar conversa")
		}
		if !conv.AccessibleBy(s) {
			return nil, apperror.New(apperror.CodeNotFound, "Conversation introuvable")
		}
		return conv, nil
	}

	now := g.now()
	conv := &chat.Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.IsAuthenticated() {
		conv.UserID = s.UserID
		conv.SessionID = s.UserID
	} else {
		conv.SessionID = chat.GuestSessionPrefix + uuid.NewString()
	}

	if err := g.repo.Create(ctx, conv); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao criar conversa")
	}
	return conv, nil
}

// complete submete a pergunta ao assistente e aguarda um estado terminal.
// Em caso de falha a thread da conversa é descartada.
func (g *QuotaGate) complete(ctx context.Context, conv *chat.Conversation, history []chat.Message, text string, log logger.Logger) (completion.Submission, string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, g.cfg.CompletionTimeout)
	defer cancel()

	sub, err := g.completer.Submit(waitCtx, completion.Request{
		ConversationID: conv.ID,
		ThreadID:       conv.ThreadID,
		History:        history,
		Question:       text,
	})
	if err != nil {
		log.Error("falha ao submeter pergunta ao assistente", "error", err)
		g.discardThread(ctx, conv, sub, err, log)
		return sub, "", g.completionError(err)
	}

	answer, err := completion.Await(waitCtx, g.completer, sub, g.cfg.PollInterval)
	if err != nil {
		log.Error("assistente não produziu resposta", "run_id", sub.RunID, "error", err)
		g.discardThread(ctx, conv, sub, err, log)
		return sub, "", g.completionError(err)
	}
	return sub, answer, nil
}

// rememberThread grava a thread usada por uma troca já persistida
func (g *QuotaGate) rememberThread(ctx context.Context, conv *chat.Conversation, threadID string, log logger.Logger) {
	if threadID == "" || threadID == conv.ThreadID {
		return
	}
	if err := g.repo.SetThreadID(ctx, conv.ID, threadID); err != nil {
		log.Warn("falha ao gravar thread da conversa", "thread_id", threadID, "error", err)
		return
	}
	conv.ThreadID = threadID
}

// discardThread desfaz o efeito remoto de uma troca que não foi gravada.
// Uma execução que pode seguir ativa é cancelada, e a conversa deixa de usar a
// thread: a próxima troca cria outra a partir do histórico gravado.
func (g *QuotaGate) discardThread(ctx context.Context, conv *chat.Conversation, sub completion.Submission, cause error, log logger.Logger) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if sub.RunID != "" && cause != nil && !completion.Terminal(cause) {
		if err := g.completer.Cancel(cleanupCtx, sub); err != nil {
			log.Warn("falha ao cancelar execução", "run_id", sub.RunID, "error", err)
		}
	}

	if conv.ThreadID == "" {
		return
	}
	if err := g.repo.SetThreadID(cleanupCtx, conv.ID, ""); err != nil {
		log.Warn("falha ao desassociar thread da conversa", "thread_id", conv.ThreadID, "error", err)
		return
	}
	conv.ThreadID = ""
}

func (g *QuotaGate) completionError(err error) error {
	if errors.Is(err, completion.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(err, apperror.CodeCompletionTimeout, "tempo esgotado aguardando o assistente")
	}
	return apperror.Wrap(err, apperror.CodeCompletionFailure, "falha na geração da resposta")
}
