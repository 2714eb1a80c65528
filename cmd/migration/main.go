package main

import (
	"os"

	"github.com/hugohenrick/assistant-juridique/internal/config"
	"github.com/hugohenrick/assistant-juridique/internal/infrastructure/database"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.NewLogger()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Warn("arquivo .env não encontrado", "error", err)
	}

	version, err := database.RunMigrations(config.LoadDatabase().MigrationURL())
	if err != nil {
		log.Error("erro ao executar migrações", "error", err)
		os.Exit(1)
	}

	log.Info("migrações executadas com sucesso", "version", version)
}
