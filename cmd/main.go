package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/referee-review/config"
	"github.com/Dosada05/referee-review/db"
	"github.com/Dosada05/referee-review/handlers"
	"github.com/Dosada05/referee-review/live"
	"github.com/Dosada05/referee-review/logger"
	"github.com/Dosada05/referee-review/repositories"
	api "github.com/Dosada05/referee-review/routes"
	"github.com/Dosada05/referee-review/scheduler"
	"github.com/Dosada05/referee-review/services"
	"github.com/Dosada05/referee-review/storage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().
		Int("port", cfg.ServerPort).
		Str("timezone", cfg.Location.String()).
		Msg("configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("application failed")
		os.Exit(1)
	}
	log.Info().Msg("application exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database connection")
		} else {
			log.Info().Msg("database connection closed")
		}
	}()
	log.Info().Msg("database connection established")

	if err := db.Migrate(ctx, dbConn); err != nil {
		return err
	}
	log.Info().Msg("database schema applied")

	// Инициализация загрузчика файлов (Cloudflare R2), если он настроен
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		log.Info().Str("bucket", cfg.R2.BucketName).Msg("Cloudflare R2 uploader initialized")
	} else {
		log.Warn().Msg("R2 is not configured, referee photo uploads are disabled")
	}

	// Инициализация WebSocket Hub
	hub := live.NewHub(log)
	go hub.Run(ctx)

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	refereeRepo := repositories.NewPostgresRefereeRepository(dbConn)
	ratingRepo := repositories.NewPostgresRatingRepository(dbConn)
	momentRepo := repositories.NewPostgresMomentRepository(dbConn)
	commentRepo := repositories.NewPostgresCommentRepository(dbConn)
	reportRepo := repositories.NewPostgresReportRepository(dbConn)

	// Инициализация сервисов
	tokens := services.NewTokenIssuer(cfg.JWTSecretKey, services.DefaultTokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	leagueService := services.NewLeagueService(leagueRepo, roundRepo, matchRepo)
	refereeService := services.NewRefereeService(refereeRepo, ratingRepo, matchRepo, uploader, log)
	matchService := services.NewMatchService(matchRepo, roundRepo, refereeRepo, uploader)
	momentService := services.NewMomentService(momentRepo, commentRepo, matchRepo)
	commentService := services.NewCommentService(commentRepo, momentRepo)
	reportService := services.NewReportService(reportRepo)
	matchStatusService := services.NewMatchStatusService(matchRepo, cfg.Location, hub, log)
	roundFocusService := services.NewRoundFocusService(roundRepo, cfg.Location, hub, log)

	// Запуск планировщика фоновых задач
	if cfg.SchedulerEnabled {
		sched := scheduler.New(log, cfg.Location)
		if err := sched.AddJob(cfg.MatchStatusSchedule, scheduler.NewMatchStatusJob(matchStatusService, log)); err != nil {
			return fmt.Errorf("invalid MATCH_STATUS_SCHEDULE %q: %w", cfg.MatchStatusSchedule, err)
		}
		if err := sched.AddJob(cfg.RoundFocusSchedule, scheduler.NewRoundFocusJob(roundFocusService, log)); err != nil {
			return fmt.Errorf("invalid ROUND_FOCUS_SCHEDULE %q: %w", cfg.RoundFocusSchedule, err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Info().Msg("in-process scheduler disabled, relying on /cron triggers")
	}

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		League:    handlers.NewLeagueHandler(leagueService, matchService),
		Match:     handlers.NewMatchHandler(matchService, momentService),
		Referee:   handlers.NewRefereeHandler(refereeService),
		Moment:    handlers.NewMomentHandler(momentService, commentService, reportService),
		Embed:     handlers.NewEmbedHandler(),
		Cron:      handlers.NewCronHandler(matchStatusService, roundFocusService),
		WebSocket: handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		CronSecret:     cfg.CronSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         log,
	})

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*time.Minute + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Msg("starting server")
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		log.Info().Msg("server stopped gracefully")
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
			if closeErr := server.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to force close server")
			}
			return err
		}
		log.Info().Msg("server shutdown complete")
	}
	return nil
}
