package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/config"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/delivery/telegram"
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
	if cfg.TelegramAPIToken == "" {
		log.Fatal("TELEGRAM_API_TOKEN is not set")
	}

	logger, err := applogger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "play", Description: "Start a game"},
		{Command: "hint", Description: "Hint for the current question"},
		{Command: "skip", Description: "Skip the current question"},
		{Command: "score", Description: "Current game score"},
		{Command: "stop", Description: "Finish the game and see your score"},
		{Command: "daily", Description: "Today's daily challenge"},
		{Command: "top", Description: "Leaderboard"},
		{Command: "reset", Description: "Wipe your game history"},
		{Command: "help", Description: "How to play"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		logger.Warn("failed to set bot commands", zap.Error(err))
	}

	logger.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	countryRepo, err := repository.NewCountryRepository(cfg.CountriesJSONPath)
	if err != nil {
		logger.Fatal("failed to load country dataset", zap.Error(err))
	}

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
	reset := service.NewResetService(postgres.NewTransactor(pool))

	go daily.Start(ctx)

	handler := telegram.NewHandler(bot, logger, quiz, daily, stats, playerRepo, reset)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("handler stopped with error", zap.Error(err))
	}
}
