package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-qa/internal/api"
	"career-qa/internal/api/handlers"
	"career-qa/internal/models"
	"career-qa/internal/repository"
	"career-qa/internal/service"
	"career-qa/pkg/config"
	"career-qa/pkg/logger"
	"career-qa/pkg/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title Career QA API
// @version 1.0
// @description Answers questions about a person's professional background from a curated knowledge base.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

const embeddingBuildTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting career QA service")

	ctx := context.Background()

	kb := loadKnowledgeBase(ctx, cfg, appLogger)
	persona := loadPersona(&cfg.Persona, appLogger)

	index := buildEmbeddingIndex(ctx, &cfg.Embedding, kb, appLogger)

	generator, err := service.NewGenerator(&cfg.Generation, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize generation service", zap.Error(err))
	}
	defer generator.Close()

	metrics := service.NewMetrics(prometheus.DefaultRegisterer)
	retrieval := service.NewRetrievalService(kb, index, &cfg.Retrieval, &cfg.Suggest, appLogger)
	assistant := service.NewAssistantService(retrieval, generator, persona, cfg.Retrieval.RepeatThreshold, metrics, appLogger)

	queryHandler := handlers.NewQueryHandler(assistant, retrieval, generator.Provider(), appLogger)
	app := api.SetupRouter(queryHandler, &cfg.Server, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting",
			zap.String("address", addr),
			zap.Int("entries", kb.Len()),
			zap.Bool("semantic", index.Enabled()),
		)
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// loadKnowledgeBase never fails: a missing or broken store leaves the service
// running with an empty knowledge base.
func loadKnowledgeBase(ctx context.Context, cfg *config.Config, log *zap.Logger) *models.KnowledgeBase {
	var (
		entries []models.KnowledgeEntry
		err     error
	)

	switch cfg.Knowledge.Source {
	case "postgres":
		entries, err = loadFromPostgres(ctx, &cfg.Database, log)
	default:
		entries, err = repository.NewKnowledgeFile(cfg.Knowledge.FilePath, log).LoadEntries(ctx)
	}
	if err != nil {
		log.Error("Failed to load knowledge base, continuing with an empty one",
			zap.String("source", cfg.Knowledge.Source),
			zap.Error(err),
		)
	}

	kb := models.NewKnowledgeBase(entries)
	if dropped := len(entries) - kb.Len(); dropped > 0 {
		log.Warn("Skipped knowledge entries without question or answer", zap.Int("count", dropped))
	}
	return kb
}

func loadFromPostgres(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) ([]models.KnowledgeEntry, error) {
	db, err := postgres.NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return repository.NewKnowledgeRepository(db, log).LoadEntries(ctx)
}

func loadPersona(cfg *config.PersonaConfig, log *zap.Logger) models.Persona {
	var persona models.Persona
	if cfg.FilePath != "" {
		p, err := repository.LoadPersona(cfg.FilePath)
		if err != nil {
			log.Warn("Failed to load persona file, using defaults", zap.Error(err))
		} else {
			persona = p
		}
	}

	if cfg.Name != "" {
		persona.Name = cfg.Name
	}
	if cfg.Pronoun != "" && persona.Pronoun == "" {
		persona.Pronoun = cfg.Pronoun
	}
	if cfg.AssistantName != "" && persona.AssistantName == "" {
		persona.AssistantName = cfg.AssistantName
	}
	return persona.WithDefaults()
}

// buildEmbeddingIndex returns nil when embeddings are unavailable; semantic
// scoring then stays off until the next restart.
func buildEmbeddingIndex(ctx context.Context, cfg *config.EmbeddingConfig, kb *models.KnowledgeBase, log *zap.Logger) *service.EmbeddingIndex {
	embedder, err := service.NewEmbedder(cfg, log)
	if err != nil {
		log.Warn("Embedding service unavailable, semantic scoring degraded", zap.Error(err))
		return nil
	}
	if embedder == nil {
		return nil
	}

	buildCtx, cancel := context.WithTimeout(ctx, embeddingBuildTimeout)
	defer cancel()

	index, err := service.BuildEmbeddingIndex(buildCtx, embedder, kb, cfg.BatchSize, cfg.Timeout, log)
	if err != nil {
		log.Warn("Failed to embed knowledge base, semantic scoring degraded", zap.Error(err))
		return nil
	}
	return index
}
