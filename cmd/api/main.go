package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/assistant-juridique/internal/config"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
	"github.com/joho/godotenv"
)

// @title           Assistant Juridique API
// @version         1.0
// @description     API do assistente jurídico: perguntas gratuitas para visitantes, conta de cliente e painel administrativo

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"

func main() {
	log := logger.NewLogger()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Warn("arquivo .env não encontrado", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuração inválida", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("erro ao iniciar aplicação", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Error("servidor encerrado com erro", "error", err)
		os.Exit(1)
	}
}
