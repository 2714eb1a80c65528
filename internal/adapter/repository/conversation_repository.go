package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
	"github.com/hugohenrick/assistant-juridique/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository implementa chat.Repository usando PostgreSQL
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository cria uma nova instância de ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) chat.Repository {
	return &ConversationRepository{db: db}
}

// Create implementa chat.Repository.Create
func (r *ConversationRepository) Create(ctx context.Context, c *chat.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_id, session_id, thread_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID,
		nullable(c.UserID),
		c.SessionID,
		nullable(c.ThreadID),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir conversa: %w", err)
	}
	return nil
}

// FindByID implementa chat.Repository.FindByID
func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*chat.Conversation, error) {
	query := `
		SELECT id, user_id, session_id, thread_id, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	c := &chat.Conversation{}
	var userID, threadID *string
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &userID, &c.SessionID, &threadID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, chat.ErrConversationNotFound
		}
		return nil, fmt.Errorf("falha ao buscar conversa: %w", err)
	}
	c.UserID = deref(userID)
	c.ThreadID = deref(threadID)
	return c, nil
}

// ListByUser implementa chat.Repository.ListByUser
func (r *ConversationRepository) ListByUser(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	query := `
		SELECT c.id, c.user_id, c.session_id, c.thread_id, c.created_at, c.updated_at,
		       COUNT(m.id), COALESCE(MAX(m.created_at), c.created_at)
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar conversas: %w", err)
	}
	defer rows.Close()

	summaries := []chat.ConversationSummary{}
	for rows.Next() {
		var s chat.ConversationSummary
		var owner, threadID *string
		if err := rows.Scan(
			&s.ID, &owner, &s.SessionID, &threadID, &s.CreatedAt, &s.UpdatedAt,
			&s.MessageCount, &s.LastMessage,
		); err != nil {
			return nil, fmt.Errorf("falha ao ler conversa: %w", err)
		}
		s.UserID = deref(owner)
		s.ThreadID = deref(threadID)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar conversas: %w", err)
	}
	return summaries, nil
}

// Messages implementa chat.Repository.Messages
func (r *ConversationRepository) Messages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar mensagens: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var m chat.Message
		var role string
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler mensagem: %w", err)
		}
		m.Role = chat.Role(role)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar mensagens: %w", err)
	}
	return messages, nil
}

// CountUserMessages implementa chat.Repository.CountUserMessages
func (r *ConversationRepository) CountUserMessages(ctx context.Context, conversationID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND role = $2",
		conversationID, string(chat.RoleUser),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar perguntas: %w", err)
	}
	return count, nil
}

// AppendExchange implementa chat.Repository.AppendExchange.
// A linha da conversa fica bloqueada (FOR UPDATE) até o commit, o que
// serializa a verificação do dono e da cota entre instâncias.
func (r *ConversationRepository) AppendExchange(ctx context.Context, conversationID, ownerID string, question, answer *chat.Message, questionLimit int) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var owner *string
		err := tx.QueryRow(ctx, "SELECT user_id FROM conversations WHERE id = $1 FOR UPDATE", conversationID).Scan(&owner)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return chat.ErrConversationNotFound
			}
			return fmt.Errorf("falha ao bloquear conversa: %w", err)
		}
		if deref(owner) != ownerID {
			return chat.ErrConversationNotFound
		}

		if questionLimit > 0 {
			var asked int
			err := tx.QueryRow(ctx,
				"SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND role = $2",
				conversationID, string(chat.RoleUser),
			).Scan(&asked)
			if err != nil {
				return fmt.Errorf("falha ao contar perguntas: %w", err)
			}
			if asked >= questionLimit {
				return chat.ErrQuotaExceeded
			}
		}

		insert := `
			INSERT INTO messages (id, conversation_id, role, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, m := range []*chat.Message{question, answer} {
			if _, err := tx.Exec(ctx, insert, m.ID, conversationID, string(m.Role), m.Content, m.CreatedAt); err != nil {
				return fmt.Errorf("falha ao inserir mensagem: %w", err)
			}
		}

		if _, err := tx.Exec(ctx,
			"UPDATE conversations SET updated_at = $2 WHERE id = $1",
			conversationID, answer.CreatedAt,
		); err != nil {
			return fmt.Errorf("falha ao atualizar conversa: %w", err)
		}
		return nil
	})
}

// SetThreadID implementa chat.Repository.SetThreadID; threadID vazio desassocia a thread
func (r *ConversationRepository) SetThreadID(ctx context.Context, conversationID, threadID string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE conversations SET thread_id = $2 WHERE id = $1",
		conversationID, nullable(threadID),
	)
	if err != nil {
		return fmt.Errorf("falha ao gravar thread: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrConversationNotFound
	}
	return nil
}

// AssignOwner implementa chat.Repository.AssignOwner
func (r *ConversationRepository) AssignOwner(ctx context.Context, conversationID, userID string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE conversations SET user_id = $2, updated_at = NOW() WHERE id = $1 AND user_id IS NULL",
		conversationID, userID,
	)
	if err != nil {
		return fmt.Errorf("falha ao associar conversa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, conversationID); err != nil {
			return err
		}
		return chat.ErrOwnerAlreadySet
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
