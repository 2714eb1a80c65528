package controller

import (
	"context"
	"sync"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/internal/domain/user"
	"github.com/hugohenrick/assistant-juridique/internal/service/completion"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*user.User)}
}

func (r *memoryUsers) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byEmail[user.NormalizeEmail(email)]
	return ok, nil
}

// memoryConversations guarda conversas e mensagens em memória
type memoryConversations struct {
	mu            sync.Mutex
	conversations map[string]*chat.Conversation
	messages      map[string][]chat.Message
}

func newMemoryConversations() *memoryConversations {
	return &memoryConversations{
		conversations: make(map[string]*chat.Conversation),
		messages:      make(map[string][]chat.Message),
	}
}

func (r *memoryConversations) Create(_ context.Context, c *chat.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.conversations[c.ID] = &cp
	return nil
}

func (r *memoryConversations) FindByID(_ context.Context, id string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryConversations) ListByUser(_ context.Context, userID string) ([]chat.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []chat.ConversationSummary{}
	for _, c := range r.conversations {
		if c.UserID == userID {
			out = append(out, chat.ConversationSummary{Conversation: *c, MessageCount: len(r.messages[c.ID])})
		}
	}
	return out, nil
}

func (r *memoryConversations) Messages(_ context.Context, id string) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]chat.Message(nil), r.messages[id]...), nil
}

func (r *memoryConversations) CountUserMessages(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return chat.CountQuestions(r.messages[id]), nil
}

func (r *memoryConversations) AppendExchange(_ context.Context, id, ownerID string, q, a *chat.Message, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok || c.UserID != ownerID {
		return chat.ErrConversationNotFound
	}
	if limit > 0 && chat.CountQuestions(r.messages[id]) >= limit {
		return chat.ErrQuotaExceeded
	}
	r.messages[id] = append(r.messages[id], *q, *a)
	return nil
}

func (r *memoryConversations) SetThreadID(_ context.Context, id, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		c.ThreadID = threadID
	}
	return nil
}

func (r *memoryConversations) AssignOwner(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return chat.ErrConversationNotFound
	}
	if c.UserID != "" {
		return chat.ErrOwnerAlreadySet
	}
	c.UserID = userID
	return nil
}

// echoAssistant responde imediatamente repetindo a pergunta
type echoAssistant struct {
	fail bool
}

func (e *echoAssistant) Submit(_ context.Context, req completion.Request) (completion.Submission, error) {
	return completion.Submission{ThreadID: "thread", RunID: req.Question}, nil
}

func (e *echoAssistant) Cancel(context.Context, completion.Submission) error {
	return nil
}

func (e *echoAssistant) Poll(_ context.Context, sub completion.Submission) (completion.Result, error) {
	if e.fail {
		return completion.Result{Status: completion.StatusFailed}, nil
	}
	return completion.Result{Status: completion.StatusCompleted, Text: "Réponse: " + sub.RunID}, nil
}
