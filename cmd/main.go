// cmd/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_5_superlingo/internal/config"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Superlingo language learning API",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイル読み込み用の一時的なロガー設定
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			if err := config.LoadConfig(configPath); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			slog.SetDefault(newLogger(config.Cfg.Log.Level))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs", "directory containing config.yaml")

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON で出力する
func newLogger(level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler).With("app", config.AppName)
}
