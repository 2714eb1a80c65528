package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET_KEY", "segredo")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, 2, cfg.Chat.FreeQuestionLimit)
	assert.Equal(t, 1000, cfg.Chat.MaxMessageLength)
	assert.Equal(t, time.Second, cfg.Chat.PollInterval)
	assert.Equal(t, 60*time.Second, cfg.Chat.CompletionTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Greater(t, cfg.Chat.LockTTL, cfg.Chat.CompletionTimeout)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET_KEY", "segredo")
	v.Set("FREE_QUESTION_LIMIT", 5)
	v.Set("ADMIN_EMAIL", "  Admin@Cabinet.fr ")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.fr, https://b.fr,")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Chat.FreeQuestionLimit)
	assert.Equal(t, "admin@cabinet.fr", cfg.AdminEmail)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"https://a.fr", "https://b.fr"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.ConnectionString())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.MigrationURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		wantErr error
	}{
		{"missing jwt secret", map[string]any{}, ErrMissingJWTSecret},
		{"zero limit", map[string]any{"JWT_SECRET_KEY": "s", "FREE_QUESTION_LIMIT": 0}, ErrInvalidQuestionLimit},
		{"zero length", map[string]any{"JWT_SECRET_KEY": "s", "MAX_MESSAGE_LENGTH": 0}, ErrInvalidMessageLength},
		{"zero interval", map[string]any{"JWT_SECRET_KEY": "s", "COMPLETION_POLL_INTERVAL": "0s"}, ErrInvalidPollInterval},
		{"timeout below interval", map[string]any{"JWT_SECRET_KEY": "s", "COMPLETION_TIMEOUT": "500ms"}, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := LoadFrom(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConnectionStringFromParts(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=disable", d.ConnectionString())
	assert.Equal(t, "postgres://u:p@h:5433/n?sslmode=disable", d.MigrationURL())
}

func TestLoadDatabaseIgnoresOtherSettings(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("DB_NAME", "juridique_test")

	db := LoadDatabase()
	assert.Equal(t, "juridique_test", db.Name)
	assert.Contains(t, db.MigrationURL(), "/juridique_test?sslmode=disable")
}
