package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário; retorna erro de duplicidade se o email já existir
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail verifica se já existe uma conta com o email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
