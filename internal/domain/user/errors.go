package user

import "errors"

// Erros específicos do domínio de usuários
var (
	ErrNotFound       = errors.New("usuário não encontrado")
	ErrDuplicateEmail = errors.New("já existe um usuário com este email")
)
