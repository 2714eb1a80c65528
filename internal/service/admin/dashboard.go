package admin

import (
	"context"
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/stats"
	"github.com/hugohenrick/assistant-juridique/pkg/apperror"
)

// DashboardService monta o painel administrativo a partir das consultas agregadas
type DashboardService struct {
	repo stats.Repository
	now  func() time.Time
}

// NewDashboardService cria um novo DashboardService. Os dias do gráfico e o
// início do mês são calculados em UTC.
func NewDashboardService(repo stats.Repository) *DashboardService {
	return &DashboardService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Build retorna o painel completo
func (s *DashboardService) Build(ctx context.Context) (*stats.Dashboard, error) {
	now := s.now()
	chartStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(stats.ChartDays - 1))

	totals, err := s.repo.Totals(ctx, stats.MonthStart(now))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao calcular totais")
	}
	recentUsers, err := s.repo.RecentUsers(ctx, stats.RecentLimit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao listar usuários recentes")
	}
	recentConversations, err := s.repo.RecentConversations(ctx, stats.RecentLimit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao listar conversas recentes")
	}
	userStats, err := s.repo.UserStats(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao calcular estatísticas por usuário")
	}
	perDay, err := s.repo.QuestionsPerDay(ctx, chartStart)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "falha ao contar perguntas por dia")
	}

	return &stats.Dashboard{
		Totals:              totals,
		RecentUsers:         recentUsers,
		RecentConversations: recentConversations,
		UserStats:           userStats,
		ChartData:           stats.FillChart(now, perDay),
	}, nil
}
