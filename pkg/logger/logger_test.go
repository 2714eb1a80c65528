package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "info", false)

	l.Info("mensagem enviada", "conversation_id", "abc")

	out := buf.String()
	assert.Contains(t, out, "mensagem enviada")
	assert.Contains(t, out, "conversation_id=abc")
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "warn", false)

	l.Info("ignorada")
	l.Debug("ignorada também")
	assert.Empty(t, buf.String())

	l.Warn("aviso")
	assert.Contains(t, buf.String(), "aviso")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "debug", true).With("request_id", "r-1")

	l.Error("falha")

	assert.Contains(t, buf.String(), `"request_id":"r-1"`)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
