package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/server/config"
	"github.com/iudanet/promptpal/internal/server/storage/sqlite"
	"github.com/iudanet/promptpal/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "promptpal-server",
	Short: "PromptPal REST API server",
	Long: `PromptPal server stores prompts of registered users and exposes
them over a JSON REST API with bearer token authentication.

Configuration is read from defaults, an optional YAML file (--config),
PROMPTPAL_* environment variables and command line flags, in that order.`,
	Version:      version.Version,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("addr", ":3001", "HTTP listen address")
	flags.String("db", "promptpal.db", "path to SQLite database")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("env", "development", "environment: development or production")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, versionCmd)
}

// loadConfig читает и проверяет конфигурацию, создает логгер
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStorage открывает базу и применяет миграции
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlite.Storage, error) {
	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", slog.String("path", cfg.Database.Path))
	return store, nil
}
