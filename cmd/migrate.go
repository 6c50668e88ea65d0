package main

import (
	"log/slog"

	"go_5_superlingo/internal/config"
	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/seed"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			return withDB(logger, func(db *gorm.DB) error {
				if err := repository.Migrate(db); err != nil {
					return err
				}
				logger.Info("Migration completed")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in lesson catalog (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			ctx := middleware.WithLogger(cmd.Context(), logger)
			return withDB(logger, func(db *gorm.DB) error {
				if err := repository.Migrate(db); err != nil {
					return err
				}
				n, err := seed.Run(ctx, db, repository.NewGormLessonRepository())
				if err != nil {
					return err
				}
				logger.Info("Seed completed", "lessons", n)
				return nil
			})
		},
	}
}

// withDB は接続を開いて fn を実行し、必ず閉じる
func withDB(logger *slog.Logger, fn func(db *gorm.DB) error) error {
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		}
	}()
	return fn(db)
}
