package assistant

import (
	"context"
	"strings"

	"github.com/hugohenrick/assistant-juridique/internal/config"
	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

// replyPageSize limita a busca pela resposta às mensagens mais recentes da execução
const replyPageSize = 10

// NewOpenAIAssistant cria o adaptador ligado à API da OpenAI
func NewOpenAIAssistant(cfg config.AssistantConfig) (*Assistant, error) {
	if cfg.APIKey == "" || cfg.AssistantID == "" {
		return nil, ErrMissingConfig
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return newAssistant(&sdkThreads{
		client:      openaisdk.NewClient(opts...),
		assistantID: cfg.AssistantID,
	}), nil
}

// sdkThreads implementa threadsAPI com o cliente openai-go
type sdkThreads struct {
	client      openaisdk.Client
	assistantID string
}

func (s *sdkThreads) CreateThread(ctx context.Context, messages []chat.Message) (string, error) {
	params := openaisdk.BetaThreadNewParams{}
	for _, m := range messages {
		msg := openaisdk.BetaThreadNewParamsMessage{
			Role: "user",
			Content: openaisdk.BetaThreadNewParamsMessageContentUnion{
				OfString: param.NewOpt(m.Content),
			},
		}
		if m.Role == chat.RoleAssistant {
			msg.Role = "assistant"
		}
		params.Messages = append(params.Messages, msg)
	}

	thread, err := s.client.Beta.Threads.New(ctx, params)
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

func (s *sdkThreads) AddMessage(ctx context.Context, threadID, text string) error {
	_, err := s.client.Beta.Threads.Messages.New(ctx, threadID, openaisdk.BetaThreadMessageNewParams{
		Role: "user",
		Content: openaisdk.BetaThreadMessageNewParamsContentUnion{
			OfString: param.NewOpt(text),
		},
	})
	return err
}

func (s *sdkThreads) CreateRun(ctx context.Context, threadID string) (string, error) {
	run, err := s.client.Beta.Threads.Runs.New(ctx, threadID, openaisdk.BetaThreadRunNewParams{
		AssistantID: s.assistantID,
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func (s *sdkThreads) GetRun(ctx context.Context, threadID, runID string) (string, string, error) {
	run, err := s.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return "", "", err
	}
	return string(run.Status), run.LastError.Message, nil
}

func (s *sdkThreads) CancelRun(ctx context.Context, threadID, runID string) error {
	_, err := s.client.Beta.Threads.Runs.Cancel(ctx, threadID, runID)
	return err
}

func (s *sdkThreads) LatestReply(ctx context.Context, threadID, runID string) (string, error) {
	page, err := s.client.Beta.Threads.Messages.List(ctx, threadID, openaisdk.BetaThreadMessageListParams{
		RunID: param.NewOpt(runID),
		Order: "desc",
		Limit: param.NewOpt(int64(replyPageSize)),
	})
	if err != nil {
		return "", err
	}

	for _, msg := range page.Data {
		if string(msg.Role) != string(chat.RoleAssistant) {
			continue
		}
		var parts []string
		for _, content := range msg.Content {
			if content.Type == "text" && content.Text.Value != "" {
				parts = append(parts, content.Text.Value)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n"), nil
		}
	}
	return "", nil
}
