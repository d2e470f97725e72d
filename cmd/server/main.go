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

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cup-roster/config"
	"github.com/Dosada05/cup-roster/db"
	"github.com/Dosada05/cup-roster/handlers"
	"github.com/Dosada05/cup-roster/middleware"
	"github.com/Dosada05/cup-roster/realtime"
	"github.com/Dosada05/cup-roster/repositories"
	api "github.com/Dosada05/cup-roster/routes"
	"github.com/Dosada05/cup-roster/services"
	"github.com/Dosada05/cup-roster/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateForServer()
	}
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	importDefaults, err := cfg.ImportOptions()
	if err != nil {
		logger.Error("failed to load import settings", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("import_header_row", importDefaults.HeaderRow),
		slog.Int("import_start_row", importDefaults.StartRow),
	)

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

	// Архив загруженных файлов в R2 необязателен
	var uploader storage.FileUploader
	if cfg.R2.Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 storage is not configured, import files will not be archived")
	}

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(tournamentRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, tournamentRepo, logger)
	importService := services.NewPlayerImportService(teamRepo, playerRepo, uploader, wsHub, logger)

	// Инициализация обработчиков HTTP
	router := chi.NewRouter()
	api.SetupRoutes(router, middleware.NewAuthenticator(cfg.JWTSecretKey), api.Handlers{
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Team:         handlers.NewTeamHandler(teamService),
		PlayerImport: handlers.NewPlayerImportHandler(importService, importDefaults, cfg.ImportMaxUploadBytes),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, teamService, cfg.CORSAllowedOrigins),
	}, cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	// Загрузка большой книги и запись строк занимают время, поэтому WriteTimeout больше обычного
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
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
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
