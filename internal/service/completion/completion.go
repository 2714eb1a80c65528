package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
)

// Status é o estado de uma execução no assistente externo
type Status string

// Estados possíveis de uma execução
const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Pending informa se a execução ainda não chegou a um estado terminal.
// Somente queued e in_progress são considerados pendentes.
func (s Status) Pending() bool {
	return s == StatusQueued || s == StatusInProgress
}

// Erros do ciclo de uma execução
var (
	ErrFailed  = errors.New("execução do assistente falhou")
	ErrTimeout = errors.New("tempo de espera pelo assistente esgotado")
	ErrEmpty   = errors.New("assistente retornou uma resposta vazia")
)

// Request é o pedido de resposta para uma conversa
type Request struct {
	ConversationID string
	// ThreadID é a thread já associada à conversa; vazio na primeira troca
	ThreadID string
	// History contém as mensagens já persistidas, em ordem
	History []chat.Message
	// Question é a nova pergunta do usuário
	Question string
}

// Submission identifica uma execução submetida
type Submission struct {
	ThreadID string
	RunID    string
}

// Result é o estado observado de uma execução
type Result struct {
	Status Status
	Text   string
	// Detail descreve o motivo de uma falha, quando disponível
	Detail string
}

// Client é o colaborador externo que produz as respostas do assistente
type Client interface {
	// Submit envia a pergunta e inicia uma execução
	Submit(ctx context.Context, req Request) (Submission, error)

	// Poll consulta o estado atual da execução
	Poll(ctx context.Context, sub Submission) (Result, error)

	// Cancel interrompe uma execução que ainda não terminou
	Cancel(ctx context.Context, sub Submission) error
}

// Terminal informa se err, vindo de Await, indica que a execução já terminou
// no assistente (falha ou resposta vazia) e não precisa ser cancelada.
func Terminal(err error) bool {
	return errors.Is(err, ErrFailed) || errors.Is(err, ErrEmpty)
}

// Await consulta a execução a cada interval até um estado terminal.
// O prazo e o cancelamento vêm de ctx; ErrTimeout é retornado quando o prazo expira.
func Await(ctx context.Context, client Client, sub Submission, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := client.Poll(ctx, sub)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", waitError(ctxErr)
			}
			return "", fmt.Errorf("erro ao consultar execução %s: %w", sub.RunID, err)
		}

		switch {
		case result.Status == StatusCompleted:
			if result.Text == "" {
				return "", ErrEmpty
			}
			return result.Text, nil
		case !result.Status.Pending():
			if result.Detail != "" {
				return "", fmt.Errorf("%w: status %s: %s", ErrFailed, result.Status, result.Detail)
			}
			return "", fmt.Errorf("%w: status %s", ErrFailed, result.Status)
		}

		select {
		case <-ctx.Done():
			return "", waitError(ctx.Err())
		case <-ticker.C:
		}
	}
}

func waitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
