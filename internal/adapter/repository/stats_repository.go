package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/stats"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository implementa stats.Repository usando PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository cria uma nova instância de StatsRepository
func NewStatsRepository(db *pgxpool.Pool) stats.Repository {
	return &StatsRepository{db: db}
}

// Totals implementa stats.Repository.Totals
func (r *StatsRepository) Totals(ctx context.Context, since time.Time) (stats.Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM conversations),
			(SELECT COUNT(*) FROM messages),
			(SELECT COUNT(*) FROM messages WHERE role = 'user'),
			(SELECT COUNT(*) FROM users WHERE created_at >= $1),
			(SELECT COUNT(*) FROM conversations WHERE created_at >= $1)
	`

	var t stats.Totals
	err := r.db.QueryRow(ctx, query, since).Scan(
		&t.Users,
		&t.Conversations,
		&t.Messages,
		&t.Questions,
		&t.UsersThisMonth,
		&t.ConversationsThisMonth,
	)
	if err != nil {
		return stats.Totals{}, fmt.Errorf("falha ao calcular totais: %w", err)
	}
	return t, nil
}

// RecentUsers implementa stats.Repository.RecentUsers
func (r *StatsRepository) RecentUsers(ctx context.Context, limit int) ([]stats.RecentUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nom, prenom, email, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários recentes: %w", err)
	}
	defer rows.Close()

	users := []stats.RecentUser{}
	for rows.Next() {
		var u stats.RecentUser
		if err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// RecentConversations implementa stats.Repository.RecentConversations
func (r *StatsRepository) RecentConversations(ctx context.Context, limit int) ([]stats.RecentConversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, u.nom, u.prenom, u.email,
		       (SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id),
		       c.created_at
		FROM conversations c
		LEFT JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar conversas recentes: %w", err)
	}
	defer rows.Close()

	conversations := []stats.RecentConversation{}
	for rows.Next() {
		var c stats.RecentConversation
		var nom, prenom, email *string
		if err := rows.Scan(&c.ID, &nom, &prenom, &email, &c.MessageCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler conversa: %w", err)
		}
		c.UserNom = deref(nom)
		c.UserPrenom = deref(prenom)
		c.UserEmail = deref(email)
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// UserStats implementa stats.Repository.UserStats
func (r *StatsRepository) UserStats(ctx context.Context) ([]stats.UserStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.civilite, u.nom, u.prenom, u.email, u.telephone, u.created_at,
		       COUNT(DISTINCT c.id),
		       COUNT(m.id) FILTER (WHERE m.role = 'user')
		FROM users u
		LEFT JOIN conversations c ON c.user_id = u.id
		LEFT JOIN messages m ON m.conversation_id = c.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("falha ao calcular estatísticas por usuário: %w", err)
	}
	defer rows.Close()

	result := []stats.UserStat{}
	for rows.Next() {
		var s stats.UserStat
		if err := rows.Scan(
			&s.ID, &s.Civilite, &s.Nom, &s.Prenom, &s.Email, &s.Telephone, &s.CreatedAt,
			&s.ConversationsCount, &s.QuestionsCount,
		); err != nil {
			return nil, fmt.Errorf("falha ao ler estatística: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// QuestionsPerDay implementa stats.Repository.QuestionsPerDay
func (r *StatsRepository) QuestionsPerDay(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT TO_CHAR(created_at AT TIME ZONE $2, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM messages
		WHERE role = 'user' AND created_at >= $1
		GROUP BY day
	`, since, since.Location().String())
	if err != nil {
		return nil, fmt.Errorf("falha ao contar perguntas por dia: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("falha ao ler contagem diária: %w", err)
		}
		counts[day] = count
	}
	return counts, rows.Err()
}
