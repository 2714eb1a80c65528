package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		pingErr  error
		status   int
		expected dto.HealthResponse
	}{
		{"banco disponível", nil, http.StatusOK, dto.HealthResponse{Status: "ok", Version: "1.0.0", Database: "ok"}},
		{"banco indisponível", errors.New("connection refused"), http.StatusServiceUnavailable,
			dto.HealthResponse{Status: "degraded", Version: "1.0.0", Database: "unavailable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(fakePinger{err: tt.pingErr}, "1.0.0").Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			var body dto.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body)
		})
	}
}
