package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/config"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/delivery/web"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/genai"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres"
	pgrepo "github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
	applogger "github.com/sumitgouthaman/GeoQuiz-AI/internal/logger"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/repository"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/service"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/storage"
)

func main() {
	// Load environment variables from .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := applogger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	countryRepo, err := repository.NewCountryRepository(cfg.CountriesJSONPath)
	if err != nil {
		logger.Fatal("failed to load country dataset", zap.Error(err))
	}
	logger.Info("country dataset loaded", zap.Int("countries", countryRepo.Count()))

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	playerRepo := pgrepo.NewPlayerRepository(pool)
	gameRepo := pgrepo.NewGameRepository(pool)

	generator, err := genai.NewClient(cfg.GenAIAPIKey, cfg.GenAI.Model)
	if err != nil {
		logger.Fatal("failed to create generation client", zap.Error(err))
	}

	sessions := storage.NewSessionStorage()
	enricher := service.NewEnrichmentService(generator, logger)
	prefetcher := service.NewPrefetcher(enricher, cfg.GenAI.PrefetchTimeout, logger)
	quiz := service.NewQuizService(countryRepo, gameRepo, sessions, prefetcher, generator, logger)
	daily := service.NewDailyChallengeService(countryRepo, prefetcher, logger)
	stats := service.NewStatsService(gameRepo)

	go daily.Start(ctx)

	handler := web.NewHandler(quiz, daily, stats, playerRepo, logger)
	server := web.NewServer(cfg.HTTP.Addr, handler, cfg.HTTP.ShutdownTimeout, logger)

	logger.Info("server starting", zap.String("addr", cfg.HTTP.Addr))
	if err := server.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
