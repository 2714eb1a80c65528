package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/assistant-juridique/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

// tokenIssuer identifica os tokens emitidos pela API
const tokenIssuer = "assistant-juridique-api"

// JWTClaims representa as claims da sessão de um cliente
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Civilite string `json:"civilite,omitempty"`
	Admin    bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	adminEmail string
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService(secretKey string, expiration time.Duration, adminEmail string) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		adminEmail: adminEmail,
		now:        time.Now,
	}, nil
}

// Expiration retorna a duração de validade dos tokens
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// IsAdmin informa se o email é o do administrador configurado
func (s *JWTService) IsAdmin(email string) bool {
	return (&user.User{Email: email}).IsAdmin(s.adminEmail)
}

// GenerateToken gera um token JWT para o usuário
func (s *JWTService) GenerateToken(u *user.User) (string, time.Time, error) {
	now := s.now()
	expirationTime := now.Add(s.expiration)

	claims := JWTClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.DisplayName(),
		Civilite: u.Civilite,
		Admin:    s.IsAdmin(u.Email),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expirationTime, nil
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
