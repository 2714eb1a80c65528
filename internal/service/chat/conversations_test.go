package chat

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedConversation(t *testing.T, repo *memoryRepo, conv chat.Conversation, questions ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &conv))
	for i, q := range questions {
		at := conv.CreatedAt.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.AppendExchange(ctx, conv.ID, conv.UserID,
			&chat.Message{ID: conv.ID + "-q" + q, ConversationID: conv.ID, Role: chat.RoleUser, Content: q, CreatedAt: at},
			&chat.Message{ID: conv.ID + "-a" + q, ConversationID: conv.ID, Role: chat.RoleAssistant, Content: "ok", CreatedAt: at},
			0))
	}
}

func TestConversationServiceList(t *testing.T) {
	repo := newMemoryRepo()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	seedConversation(t, repo, chat.Conversation{ID: "old", UserID: "u1", SessionID: "u1", CreatedAt: now.Add(-time.Hour)}, "a")
	seedConversation(t, repo, chat.Conversation{ID: "new", UserID: "u1", SessionID: "u1", CreatedAt: now}, "b", "c")
	seedConversation(t, repo, chat.Conversation{ID: "other", UserID: "u2", SessionID: "u2", CreatedAt: now})
	svc := NewConversationService(repo, 2)

	list, err := svc.List(context.Background(), chat.AuthenticatedSession("u1", "", "", false))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, 4, list[0].MessageCount)
	assert.Equal(t, "old", list[1].ID)

	_, err = svc.List(context.Background(), chat.AnonymousSession())
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
}

func TestConversationServiceMessages(t *testing.T) {
	repo := newMemoryRepo()
	seedConversation(t, repo, chat.Conversation{ID: "guest", SessionID: "guest-1"}, "Bonjour")
	seedConversation(t, repo, chat.Conversation{ID: "owned", UserID: "u1", SessionID: "u1"}, "Bonjour")
	svc := NewConversationService(repo, 2)
	ctx := context.Background()

	first, err := svc.Messages(ctx, chat.AnonymousSession(), "guest")
	require.NoError(t, err)
	second, err := svc.Messages(ctx, chat.AnonymousSession(), "guest")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, chat.RoleUser, first[0].Role)

	_, err = svc.Messages(ctx, chat.AnonymousSession(), "owned")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	_, err = svc.Messages(ctx, chat.AuthenticatedSession("u2", "", "", false), "owned")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	msgs, err := svc.Messages(ctx, chat.AuthenticatedSession("u1", "", "", false), "owned")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	_, err = svc.Messages(ctx, chat.AnonymousSession(), "missing")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestConversationServiceQuota(t *testing.T) {
	repo := newMemoryRepo()
	seedConversation(t, repo, chat.Conversation{ID: "one", SessionID: "guest-1"}, "Bonjour")
	seedConversation(t, repo, chat.Conversation{ID: "full", SessionID: "guest-2"}, "Un", "Deux")
	svc := NewConversationService(repo, 2)
	ctx := context.Background()

	tests := []struct {
		name    string
		session chat.Session
		id      string
		want    QuotaStatus
	}{
		{"new visitor", chat.AnonymousSession(), "", QuotaStatus{Limit: 2, Used: 0, Remaining: 2}},
		{"one question asked", chat.AnonymousSession(), "one", QuotaStatus{Limit: 2, Used: 1, Remaining: 1}},
		{"exhausted", chat.AnonymousSession(), "full", QuotaStatus{Limit: 2, Used: 2, Remaining: 0}},
		{"authenticated", chat.AuthenticatedSession("u1", "", "", false), "full", QuotaStatus{Limit: Unlimited, Remaining: Unlimited}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Quota(ctx, tt.session, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.Quota(ctx, chat.AnonymousSession(), "missing")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}
