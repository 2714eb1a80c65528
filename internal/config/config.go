package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Erros de validação da configuração
var (
	ErrMissingJWTSecret     = errors.New("JWT_SECRET_KEY não configurada")
	ErrInvalidQuestionLimit = errors.New("FREE_QUESTION_LIMIT deve ser maior que zero")
	ErrInvalidMessageLength = errors.New("MAX_MESSAGE_LENGTH deve ser maior que zero")
	ErrInvalidPollInterval  = errors.New("COMPLETION_POLL_INTERVAL deve ser maior que zero")
	ErrInvalidTimeout       = errors.New("COMPLETION_TIMEOUT deve ser maior que COMPLETION_POLL_INTERVAL")
)

// Config reúne toda a configuração da aplicação
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Assistant  AssistantConfig
	Chat       ChatConfig
	Redis      RedisConfig
	AdminEmail string
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port               string
	BasePath           string
	GinMode            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// DatabaseConfig contém as configurações de conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	AutoMigrate     bool
}

// AuthConfig contém as configurações de sessão
type AuthConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	CookieSecure  bool
}

// AssistantConfig contém as configurações do assistente externo
type AssistantConfig struct {
	APIKey      string
	BaseURL     string
	AssistantID string
}

// ChatConfig contém as regras do chat e da cota gratuita
type ChatConfig struct {
	FreeQuestionLimit  int
	MaxMessageLength   int
	PollInterval       time.Duration
	CompletionTimeout  time.Duration
	LockTTL            time.Duration
	RateLimitPerSecond int
}

// RedisConfig contém as configurações do Redis (opcional)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled informa se o Redis foi configurado
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// MigrationURL retorna a URL de conexão usada pelo golang-migrate
func (d DatabaseConfig) MigrationURL() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// ConnectionString retorna a string de conexão para o pgx
func (d DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("API_BASE_PATH", "/api")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "assistant_juridique")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_LIFETIME", "300s")
	v.SetDefault("AUTO_MIGRATE", true)

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("ASSISTANT_ID", "")

	v.SetDefault("FREE_QUESTION_LIMIT", 2)
	v.SetDefault("MAX_MESSAGE_LENGTH", 1000)
	v.SetDefault("COMPLETION_POLL_INTERVAL", "1s")
	v.SetDefault("COMPLETION_TIMEOUT", "60s")
	v.SetDefault("CONVERSATION_LOCK_TTL", "0s")
	v.SetDefault("RATE_LIMIT_QPS", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_EMAIL", "")
}

// Load lê a configuração das variáveis de ambiente
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom lê a configuração usando a instância de viper informada
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := read(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase lê apenas a configuração do banco, sem validar o restante
func LoadDatabase() DatabaseConfig {
	return read(viper.New()).Database
}

func read(v *viper.Viper) *Config {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			BasePath:           v.GetString("API_BASE_PATH"),
			GinMode:            v.GetString("GIN_MODE"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: v.GetDuration("DB_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET_KEY"),
			JWTExpiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
			CookieSecure:  v.GetBool("COOKIE_SECURE"),
		},
		Assistant: AssistantConfig{
			APIKey:      v.GetString("OPENAI_API_KEY"),
			BaseURL:     v.GetString("OPENAI_BASE_URL"),
			AssistantID: v.GetString("ASSISTANT_ID"),
		},
		Chat: ChatConfig{
			FreeQuestionLimit:  v.GetInt("FREE_QUESTION_LIMIT"),
			MaxMessageLength:   v.GetInt("MAX_MESSAGE_LENGTH"),
			PollInterval:       v.GetDuration("COMPLETION_POLL_INTERVAL"),
			CompletionTimeout:  v.GetDuration("COMPLETION_TIMEOUT"),
			LockTTL:            v.GetDuration("CONVERSATION_LOCK_TTL"),
			RateLimitPerSecond: v.GetInt("RATE_LIMIT_QPS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		AdminEmail: strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
	}

	// O lock precisa sobreviver à espera mais longa pelo assistente
	if cfg.Chat.LockTTL <= cfg.Chat.CompletionTimeout {
		cfg.Chat.LockTTL = cfg.Chat.CompletionTimeout + 30*time.Second
	}
	return cfg
}

// Validate verifica se a configuração é utilizável
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Chat.FreeQuestionLimit <= 0 {
		return ErrInvalidQuestionLimit
	}
	if c.Chat.MaxMessageLength <= 0 {
		return ErrInvalidMessageLength
	}
	if c.Chat.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.Chat.CompletionTimeout <= c.Chat.PollInterval {
		return ErrInvalidTimeout
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
