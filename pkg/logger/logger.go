package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

// SlogLogger implementa Logger sobre log/slog, com pares chave/valor estruturados
type SlogLogger struct {
	logger *slog.Logger
}

// NewLogger cria uma nova instância de Logger em formato texto no stdout
func NewLogger() Logger {
	return NewLoggerWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT") == "json")
}

// NewLoggerWithWriter cria um Logger escrevendo em w com o nível informado
func NewLoggerWithWriter(w io.Writer, level string, jsonFormat bool) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// NewNopLogger retorna um Logger que descarta tudo (útil em testes)
func NewNopLogger() Logger {
	return NewLoggerWithWriter(io.Discard, "error", false)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info registra uma mensagem de informação
func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Error registra uma mensagem de erro
func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Debug registra uma mensagem de debug
func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Warn registra uma mensagem de aviso
func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// With retorna um Logger que inclui os pares informados em todas as mensagens
func (l *SlogLogger) With(keysAndValues ...interface{}) Logger {
	return &SlogLogger{logger: l.logger.With(keysAndValues...)}
}
