package dto

import (
	"time"

	"github.com/hugohenrick/assistant-juridique/internal/domain/user"
)

// UserResponse representa a resposta com dados de um cliente
type UserResponse struct {
	ID        string    `json:"id"`
	Civilite  string    `json:"civilite"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Telephone string    `json:"telephone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Civilite:  u.Civilite,
		Nom:       u.Nom,
		Prenom:    u.Prenom,
		Telephone: u.Telephone,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
