package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/assistant-juridique/docs"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/controller"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/route"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/assistant"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/lock"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/repository"
	"github.com/hugohenrick/assistant-juridique/internal/config"
	"github.com/hugohenrick/assistant-juridique/internal/infrastructure/cache"
	"github.com/hugohenrick/assistant-juridique/internal/infrastructure/database"
	"github.com/hugohenrick/assistant-juridique/internal/service/admin"
	chatservice "github.com/hugohenrick/assistant-juridique/internal/service/chat"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
	"github.com/hugohenrick/assistant-juridique/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version é a versão exposta no health check
const version = "1.0.0"

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	logger logger.Logger
	router *gin.Engine
	db     *pgxpool.Pool
	redis  *redis.Client
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg.Database.AutoMigrate {
		v, err := database.RunMigrations(cfg.Database.MigrationURL())
		if err != nil {
			return nil, err
		}
		log.Info("migrações aplicadas", "version", v)
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, logger: log, db: db}

	// Redis é opcional: sem ele o lock é local e não há limite de requisições
	var locker chatservice.Locker = chatservice.NewKeyedMutex()
	var limiter gin.HandlerFunc
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		locker = lock.NewRedisLocker(client, cfg.Chat.LockTTL, log)
		limiter = middleware.RateLimit(client, cfg.Chat.RateLimitPerSecond, log)
		log.Info("redis conectado", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("REDIS_ADDR não configurado; usando lock em memória e sem limite de requisições")
	}

	completer, err := assistant.NewOpenAIAssistant(cfg.Assistant)
	if err != nil {
		app.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, cfg.AdminEmail)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Serviços
	gate := chatservice.NewQuotaGate(conversationRepo, completer, locker, chatservice.Config{
		FreeQuestionLimit: cfg.Chat.FreeQuestionLimit,
		MaxMessageLength:  cfg.Chat.MaxMessageLength,
		PollInterval:      cfg.Chat.PollInterval,
		CompletionTimeout: cfg.Chat.CompletionTimeout,
	}, log)
	conversations := chatservice.NewConversationService(conversationRepo, cfg.Chat.FreeQuestionLimit)
	dashboard := admin.NewDashboardService(statsRepo)

	// Controllers
	authController := controller.NewAuthController(userRepo, jwtService, cfg.Auth.CookieSecure, log)
	chatController := controller.NewChatController(gate, conversations, log)
	conversationController := controller.NewConversationController(conversations, log)
	adminController := controller.NewAdminController(dashboard, log)
	healthController := controller.NewHealthController(db, version)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(cfg.Server.BasePath)
	api.Use(auth.SessionMiddleware(jwtService))
	route.SetupHealthRoutes(api, healthController)
	route.SetupAuthRoutes(api, authController)
	route.SetupChatRoutes(api, chatController, conversationController, limiter)
	route.SetupAdminRoutes(api, adminController)

	app.router = router
	return app, nil
}

// Run inicia o servidor HTTP e o encerra de forma ordenada quando ctx termina
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.cfg.Server.Port, "base_path", a.cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("erro ao fechar redis", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
