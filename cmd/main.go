package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/repositories"
	api "github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Int("default_rounds", cfg.DefaultRounds))

	// Миграции схемы
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema is up to date")

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Архив завершённых турниров (Cloudflare R2), опционально
	var archiver services.Archiver
	if cfg.ArchiveEnabled() {
		r2Client, err := storage.NewCloudflareR2Client(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 client", slog.Any("error", err))
			os.Exit(1)
		}
		archiver = storage.NewTournamentArchiver(r2Client, cfg.R2BucketName, "")
		logger.Info("tournament archive enabled", slog.String("bucket", cfg.R2BucketName))
	}

	// WebSocket Hub
	wsHub := brackets.NewHub(logger)
	hubDone := make(chan struct{})
	go func() {
		wsHub.Run(ctx)
		close(hubDone)
	}()
	logger.Info("WebSocket Hub started")

	// Репозитории
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)

	// Сервисы
	tx := services.NewSQLTransactor(dbConn, logger)
	locks := services.NewTournamentLocks()

	tournamentService := services.NewTournamentService(tx, tournamentRepo, playerRepo, roundRepo, locks, wsHub,
		services.TournamentServiceConfig{
			DefaultRounds: cfg.DefaultRounds,
			TokenSecret:   []byte(cfg.JWTSecretKey),
			TokenTTL:      cfg.TokenTTL,
		}, logger)
	playerService := services.NewPlayerService(tx, tournamentRepo, playerRepo, roundRepo, locks, wsHub, logger)
	roundService := services.NewRoundService(tx, tournamentRepo, playerRepo, roundRepo, locks, wsHub, archiver, logger)
	logger.Info("services initialized")

	// Маршрутизатор
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Player:     handlers.NewPlayerHandler(playerService),
		Round:      handlers.NewRoundHandler(roundService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.AllowedOrigins),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Health:         dbConn.PingContext,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// ctx отменён сигналом или остановкой сервера: hub закрывает все WebSocket клиенты
	stop()
	<-hubDone
	logger.Info("application exited")
}
