package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeQuotaExceeded, "limite atteinte")
	assert.Equal(t, CodeQuotaExceeded, CodeOf(err))
	assert.True(t, HasCode(err, CodeQuotaExceeded))
	assert.False(t, HasCode(err, CodeInternal))

	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "falha ao salvar")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Nil(t, Wrap(nil, CodeInternal, "nada"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeQuotaExceeded, http.StatusForbidden},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeCompletionFailure, http.StatusInternalServerError},
		{CodeCompletionTimeout, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(New(tt.code, "x")))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Conversation introuvable", PublicMessage(New(CodeNotFound, "Conversation introuvable")))
	assert.Equal(t, "Erreur interne du serveur", PublicMessage(Wrap(errors.New("pq: secret"), CodeInternal, "db")))
	assert.Equal(t, "Erreur lors de la génération de la réponse", PublicMessage(New(CodeCompletionFailure, "run failed")))
	assert.Equal(t, "Erreur interne du serveur", PublicMessage(errors.New("plain")))
	assert.Empty(t, PublicMessage(nil))
}
