package chat

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/internal/service/completion"
)

// memoryRepo é um chat.Repository em memória para os testes
type memoryRepo struct {
	mu            sync.Mutex
	conversations map[string]*chat.Conversation
	messages      map[string][]chat.Message
	appendErr     error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		conversations: make(map[string]*chat.Conversation),
		messages:      make(map[string][]chat.Message),
	}
}

func (r *memoryRepo) Create(_ context.Context, c *chat.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.conversations[c.ID] = &cp
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]chat.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.ConversationSummary
	for _, c := range r.conversations {
		if c.UserID == userID {
			out = append(out, chat.ConversationSummary{Conversation: *c, MessageCount: len(r.messages[c.ID])})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) Messages(_ context.Context, conversationID string) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]chat.Message(nil), r.messages[conversationID]...), nil
}

func (r *memoryRepo) CountUserMessages(_ context.Context, conversationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return chat.CountQuestions(r.messages[conversationID]), nil
}

func (r *memoryRepo) AppendExchange(_ context.Context, conversationID, ownerID string, question, answer *chat.Message, questionLimit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	c, ok := r.conversations[conversationID]
	if !ok || c.UserID != ownerID {
		return chat.ErrConversationNotFound
	}
	if questionLimit > 0 && chat.CountQuestions(r.messages[conversationID]) >= questionLimit {
		return chat.ErrQuotaExceeded
	}
	r.messages[conversationID] = append(r.messages[conversationID], *question, *answer)
	return nil
}

func (r *memoryRepo) SetThreadID(_ context.Context, conversationID, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok {
		return chat.ErrConversationNotFound
	}
	c.ThreadID = threadID
	return nil
}

func (r *memoryRepo) AssignOwner(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok {
		return chat.ErrConversationNotFound
	}
	if c.UserID != "" {
		return chat.ErrOwnerAlreadySet
	}
	c.UserID = userID
	return nil
}

func (r *memoryRepo) messageCount(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[conversationID])
}

// fakeAssistant responde com um eco após alguns polls
type fakeAssistant struct {
	mu          sync.Mutex
	pendingPoll int
	finalStatus completion.Status
	submitErr   error
	delay       time.Duration
	submits     []completion.Request
	cancels     []completion.Submission
	polls       map[string]int
	runs        int
}

func newFakeAssistant() *fakeAssistant {
	return &fakeAssistant{finalStatus: completion.StatusCompleted, polls: make(map[string]int)}
}

func (f *fakeAssistant) Submit(_ context.Context, req completion.Request) (completion.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return completion.Submission{}, f.submitErr
	}
	f.submits = append(f.submits, req)
	f.runs++
	threadID := req.ThreadID
	if threadID == "" {
		threadID = "thread_" + req.ConversationID
	}
	return completion.Submission{ThreadID: threadID, RunID: "run_" + strconv.Itoa(f.runs) + "|" + req.Question}, nil
}

func (f *fakeAssistant) Poll(ctx context.Context, sub completion.Submission) (completion.Result, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return completion.Result{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls[sub.RunID]++
	if f.polls[sub.RunID] <= f.pendingPoll {
		return completion.Result{Status: completion.StatusInProgress}, nil
	}
	if f.finalStatus != completion.StatusCompleted {
		return completion.Result{Status: f.finalStatus, Detail: "server_error"}, nil
	}
	question := sub.RunID[strings.IndexByte(sub.RunID, '|')+1:]
	return completion.Result{Status: completion.StatusCompleted, Text: "Réponse: " + question}, nil
}

func (f *fakeAssistant) Cancel(_ context.Context, sub completion.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, sub)
	return nil
}

func (f *fakeAssistant) cancelled() []completion.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]completion.Submission(nil), f.cancels...)
}

func (f *fakeAssistant) submitted() []completion.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]completion.Request(nil), f.submits...)
}

// contendedRepo simula outra instância que associa a conversa a winner entre a
// leitura feita pelo gate e a chamada a AssignOwner
type contendedRepo struct {
	*memoryRepo
	winner string
}

func (r *contendedRepo) AssignOwner(ctx context.Context, conversationID, _ string) error {
	if err := r.memoryRepo.AssignOwner(ctx, conversationID, r.winner); err != nil {
		return err
	}
	return chat.ErrOwnerAlreadySet
}
