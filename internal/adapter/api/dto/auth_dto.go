package dto

import (
	"time"
)

// SignupRequest representa os dados de cadastro de um cliente
type SignupRequest struct {
	Civilite  string `json:"civilite" binding:"required"`
	Nom       string `json:"nom" binding:"required"`
	Prenom    string `json:"prenom" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// SignupResponse representa a resposta de cadastro bem-sucedido
type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// SigninRequest representa os dados para login
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SigninResponse representa a resposta de login bem-sucedido
type SigninResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Admin       bool         `json:"admin"`
}
