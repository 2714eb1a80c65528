package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost é o custo do bcrypt usado para as senhas dos clientes
const PasswordCost = 12

// MinPasswordLength é o tamanho mínimo aceito para a senha
const MinPasswordLength = 6

// User representa um cliente cadastrado no site
type User struct {
	ID        string    `json:"id"`
	Civilite  string    `json:"civilite"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Telephone string    `json:"telephone"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeEmail padroniza o email para comparação e armazenamento
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// DisplayName retorna o nome exibido na sessão ("prénom nom")
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.Prenom + " " + u.Nom)
}

// IsAdmin verifica se o usuário é o administrador configurado
func (u *User) IsAdmin(adminEmail string) bool {
	return adminEmail != "" && NormalizeEmail(u.Email) == NormalizeEmail(adminEmail)
}
