package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go_5_superlingo/internal/ai"
	"go_5_superlingo/internal/config"
	"go_5_superlingo/internal/handlers"
	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/seed"
	"go_5_superlingo/internal/service"
	"go_5_superlingo/internal/tutor"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var bootstrap bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), config.Cfg, slog.Default(), bootstrap)
		},
	}
	cmd.Flags().BoolVar(&bootstrap, "bootstrap", true, "run migrations and load the lesson catalog before serving")
	return cmd
}

func runServer(parent context.Context, cfg config.Config, logger *slog.Logger, bootstrap bool) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	logger.Info("Application starting...", "version", config.AppVersion)

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	lessonRepo := repository.NewGormLessonRepository()
	userRepo := repository.NewGormUserRepository()
	progressRepo := repository.NewGormProgressRepository()

	if bootstrap {
		if err := repository.Migrate(db); err != nil {
			return err
		}
		if _, err := seed.Run(ctx, db, lessonRepo); err != nil {
			return err
		}
	}

	// メトリクス
	metrics := observe.NewNoopMetrics()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		provider, err := observe.NewPrometheusProvider()
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				logger.Warn("Error shutting down meter provider", slog.Any("error", err))
			}
		}()
		if metrics, err = observe.NewMetrics(provider.MeterProvider); err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		metricsHandler = observe.Handler()
	}

	// 外部AIクライアントは起動時に一度だけ作る
	tutorClient := ai.NewTutorFromConfig(ctx, cfg.Tutor, logger)
	speechClients := ai.NewSpeechClientsFromConfig(ctx, cfg.Speech, logger)
	defer func() {
		if err := speechClients.Close(); err != nil {
			logger.Warn("Error closing speech clients", slog.Any("error", err))
		}
	}()

	authService := service.NewAuthService(db, userRepo, &cfg)
	lessonService := service.NewLessonService(db, lessonRepo, progressRepo)
	progressService := service.NewProgressService(db, lessonRepo, userRepo, progressRepo, metrics)
	tutorService := service.NewTutorService(tutorClient, tutor.NewComposer(cfg.Tutor.NativeLanguage), cfg.Tutor.Temperature, metrics)
	speechService := service.NewSpeechService(
		speechClients.Synthesizer,
		speechClients.Transcriber,
		ai.Voice{LanguageCode: cfg.Speech.LanguageCode, Name: cfg.Speech.VoiceName},
		cfg.Speech.LanguageCode,
		metrics,
	)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  &cfg,
		Logger:  logger,
		DB:      db,
		Auth:    handlers.NewAuthHandler(authService),
		Lesson:  handlers.NewLessonHandler(lessonService, progressService),
		Tutor:   handlers.NewTutorHandler(tutorService, speechService),
		Metrics: metricsHandler,
	})

	server := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
		// 音声の base64 を含むので読み書きは長めに取る
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", slog.Any("error", err))
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exiting")
	return nil
}
