package stats

import (
	"context"
	"time"
)

// Repository define as consultas agregadas do painel administrativo
type Repository interface {
	// Totals retorna os contadores globais; since delimita os contadores do mês
	Totals(ctx context.Context, since time.Time) (Totals, error)

	// RecentUsers lista os últimos usuários cadastrados
	RecentUsers(ctx context.Context, limit int) ([]RecentUser, error)

	// RecentConversations lista as últimas conversas
	RecentConversations(ctx context.Context, limit int) ([]RecentConversation, error)

	// UserStats lista todos os usuários com suas contagens
	UserStats(ctx context.Context) ([]UserStat, error)

	// QuestionsPerDay conta as perguntas por dia (AAAA-MM-DD) a partir de since
	QuestionsPerDay(ctx context.Context, since time.Time) (map[string]int, error)
}
