package main

import (
	"context"
	"database/sql"
	"log"

	"tastepost-core/internal/adapter/api"
	"tastepost-core/internal/adapter/client"
	"tastepost-core/internal/adapter/store"
	"tastepost-core/internal/config"
	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/domain/repository"
	"tastepost-core/internal/logger"
	"tastepost-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	ctx := context.Background()

	geminiClient, err := client.NewGeminiClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		zlog.Fatal("failed to init gemini client", zap.Error(err))
	}

	// Redis for per-bot usage accounting
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	usageTracker := store.NewRedisUsageTracker(rdb)

	// Postgres for the failure escalation store; memory store when unset
	var alertStore repository.AlertStore
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			zlog.Fatal("failed to open postgres", zap.Error(err))
		}
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal("failed to reach postgres", zap.Error(err))
		}
		alertStore = store.NewPostgresAlertStore(db)
	} else {
		zlog.Warn("POSTGRES_DSN not set, alerts will not survive restarts")
		alertStore = store.NewMemoryAlertStore()
	}

	catalog := entity.NewCatalog()
	generator := usecase.NewGenerator(geminiClient, catalog, zlog)
	extractor := usecase.NewExtractor(geminiClient, cfg.Gemini.ExtractionModel, zlog)

	app := fiber.New(fiber.Config{
		AppName: "Tastepost Core",
	})

	handler := api.NewHandler(generator, extractor, alertStore, usageTracker, zlog)
	api.SetupRouter(app, handler)

	zlog.Info("tastepost core running", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
