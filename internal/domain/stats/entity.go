package stats

import "time"

// ChartDays é a quantidade de dias exibidos no gráfico de perguntas
const ChartDays = 7

// RecentLimit é a quantidade de registros nas listas de recentes
const RecentLimit = 10

// Totals reúne os contadores globais do painel
type Totals struct {
	Users                  int `json:"totalUsers"`
	Conversations          int `json:"totalConversations"`
	Messages               int `json:"totalMessages"`
	Questions              int `json:"totalQuestions"`
	UsersThisMonth         int `json:"usersThisMonth"`
	ConversationsThisMonth int `json:"conversationsThisMonth"`
}

// RecentUser é um usuário recém-cadastrado
type RecentUser struct {
	ID        string    `json:"id"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentConversation é uma conversa recente com o dono (se houver)
type RecentConversation struct {
	ID           string    `json:"id"`
	UserNom      string    `json:"userNom,omitempty"`
	UserPrenom   string    `json:"userPrenom,omitempty"`
	UserEmail    string    `json:"userEmail,omitempty"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserStat resume a atividade de um usuário
type UserStat struct {
	ID                 string    `json:"id"`
	Civilite           string    `json:"civilite"`
	Nom                string    `json:"nom"`
	Prenom             string    `json:"prenom"`
	Email              string    `json:"email"`
	Telephone          string    `json:"telephone"`
	CreatedAt          time.Time `json:"createdAt"`
	ConversationsCount int       `json:"conversationsCount"`
	QuestionsCount     int       `json:"questionsCount"`
}

// DailyQuestions é um ponto do gráfico de perguntas por dia
type DailyQuestions struct {
	Date      string `json:"date"` // AAAA-MM-DD
	Questions int    `json:"questions"`
}

// Dashboard é o conteúdo completo do painel administrativo
type Dashboard struct {
	Totals
	RecentUsers         []RecentUser         `json:"recentUsers"`
	RecentConversations []RecentConversation `json:"recentConversations"`
	UserStats           []UserStat           `json:"userStats"`
	ChartData           []DailyQuestions     `json:"chartData"`
}

// MonthStart retorna o primeiro instante do mês de now
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// FillChart completa os dias sem perguntas, do mais antigo para o mais recente
func FillChart(now time.Time, counts map[string]int) []DailyQuestions {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]DailyQuestions, 0, ChartDays)
	for i := ChartDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, DailyQuestions{Date: day, Questions: counts[day]})
	}
	return out
}
