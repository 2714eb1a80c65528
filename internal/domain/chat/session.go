package chat

// SessionKind distingue visitantes de usuários conectados
type SessionKind string

// Constantes para SessionKind
const (
	SessionAnonymous     SessionKind = "anonymous"
	SessionAuthenticated SessionKind = "authenticated"
)

// Session representa a identidade de quem fez a requisição
type Session struct {
	Kind   SessionKind
	UserID string
	Email  string
	Name   string
	Admin  bool
}

// AnonymousSession retorna a sessão de um visitante não conectado
func AnonymousSession() Session {
	return Session{Kind: SessionAnonymous}
}

// AuthenticatedSession retorna a sessão de um usuário conectado
func AuthenticatedSession(userID, email, name string, admin bool) Session {
	return Session{
		Kind:   SessionAuthenticated,
		UserID: userID,
		Email:  email,
		Name:   name,
		Admin:  admin,
	}
}

// IsAuthenticated informa se a sessão pertence a um usuário conectado
func (s Session) IsAuthenticated() bool {
	return s.Kind == SessionAuthenticated && s.UserID != ""
}
