package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	"github.com/hugohenrick/assistant-juridique/internal/domain/chat"
)

// SessionCookie é o nome do cookie HttpOnly que carrega o token da sessão
const SessionCookie = "session_token"

const sessionKey = "session"

// SessionMiddleware resolve a sessão da requisição. Sem token a sessão é anônima.
// Um token inválido ou expirado no cabeçalho Authorization é rejeitado com 401;
// vindo do cookie, o cookie é apagado e a requisição segue como anônima.
func SessionMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Format de jeton invalide", "Utilisez le format 'Bearer <token>'"))
			return
		}
		if token == "" {
			c.Set(sessionKey, chat.AnonymousSession())
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil && fromCookie {
			ClearSessionCookie(c, c.Request.TLS != nil)
			c.Set(sessionKey, chat.AnonymousSession())
			c.Next()
			return
		}
		if err != nil {
			message := "Session invalide"
			if errors.Is(err, ErrExpiredToken) {
				message = "Session expirée"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message, nil))
			return
		}

		c.Set(sessionKey, chat.AuthenticatedSession(claims.UserID, claims.Email, claims.Name, jwtService.IsAdmin(claims.Email)))
		c.Next()
	}
}

// RequireSession rejeita as requisições sem usuário conectado
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentification requise", nil))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejeita as requisições que não sejam do administrador
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if !session.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentification requise", nil))
			return
		}
		if !session.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Accès refusé", nil))
			return
		}
		c.Next()
	}
}

// SessionFrom obtém a sessão resolvida pelo SessionMiddleware; anônima se ausente
func SessionFrom(c *gin.Context) chat.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(chat.Session); ok {
			return s
		}
	}
	return chat.AnonymousSession()
}

// SetSessionCookie grava o token da sessão num cookie HttpOnly
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie apaga o cookie da sessão
func ClearSessionCookie(c *gin.Context, secure bool) {
	SetSessionCookie(c, "", -1, secure)
}

// extractToken lê o token do cabeçalho Authorization ou, na falta dele, do cookie.
// fromCookie indica que o token veio do cookie.
func extractToken(c *gin.Context) (token string, fromCookie bool, err error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", false, ErrInvalidToken
		}
		return strings.TrimSpace(parts[1]), false, nil
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true, nil
	}
	return "", false, nil
}
