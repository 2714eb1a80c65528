package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/internal/service/completion"
)

// ErrMissingConfig indica que a chave da API ou o assistente não foram configurados
var ErrMissingConfig = errors.New("assistant: OPENAI_API_KEY e ASSISTANT_ID são obrigatórios")

// threadsAPI é o subconjunto da API de threads/runs usado pelo adaptador
type threadsAPI interface {
	CreateThread(ctx context.Context, messages []chat.Message) (string, error)
	AddMessage(ctx context.Context, threadID, text string) error
	CreateRun(ctx context.Context, threadID string) (string, error)
	GetRun(ctx context.Context, threadID, runID string) (status, detail string, err error)
	LatestReply(ctx context.Context, threadID, runID string) (string, error)
	CancelRun(ctx context.Context, threadID, runID string) error
}

// Assistant implementa completion.Client sobre a API Assistants (threads e runs)
type Assistant struct {
	api threadsAPI
}

var _ completion.Client = (*Assistant)(nil)

func newAssistant(api threadsAPI) *Assistant {
	return &Assistant{api: api}
}

// Submit envia a pergunta à thread da conversa e inicia uma execução.
// Sem thread, uma nova é criada com o histórico gravado e a pergunta.
func (a *Assistant) Submit(ctx context.Context, req completion.Request) (completion.Submission, error) {
	threadID := req.ThreadID
	if threadID == "" {
		messages := make([]chat.Message, 0, len(req.History)+1)
		messages = append(messages, req.History...)
		messages = append(messages, chat.Message{Role: chat.RoleUser, Content: req.Question})

		id, err := a.api.CreateThread(ctx, messages)
		if err != nil {
			return completion.Submission{}, fmt.Errorf("erro ao criar thread: %w", err)
		}
		threadID = id
	} else if err := a.api.AddMessage(ctx, threadID, req.Question); err != nil {
		return completion.Submission{}, fmt.Errorf("erro ao adicionar mensagem à thread %s: %w", threadID, err)
	}

	runID, err := a.api.CreateRun(ctx, threadID)
	if err != nil {
		return completion.Submission{ThreadID: threadID}, fmt.Errorf("erro ao iniciar execução na thread %s: %w", threadID, err)
	}
	return completion.Submission{ThreadID: threadID, RunID: runID}, nil
}

// Poll consulta o estado da execução; concluída, busca a resposta do assistente
func (a *Assistant) Poll(ctx context.Context, sub completion.Submission) (completion.Result, error) {
	status, detail, err := a.api.GetRun(ctx, sub.ThreadID, sub.RunID)
	if err != nil {
		return completion.Result{}, err
	}

	result := completion.Result{Status: completion.Status(status), Detail: detail}
	if result.Status != completion.StatusCompleted {
		return result, nil
	}

	text, err := a.api.LatestReply(ctx, sub.ThreadID, sub.RunID)
	if err != nil {
		return completion.Result{}, fmt.Errorf("erro ao buscar resposta da execução %s: %w", sub.RunID, err)
	}
	result.Text = text
	return result, nil
}

// Cancel interrompe a execução para que a thread volte a aceitar mensagens
func (a *Assistant) Cancel(ctx context.Context, sub completion.Submission) error {
	if err := a.api.CancelRun(ctx, sub.ThreadID, sub.RunID); err != nil {
		return fmt.Errorf("erro ao cancelar execução %s: %w", sub.RunID, err)
	}
	return nil
}
