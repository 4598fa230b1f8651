package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/server"
	"github.com/iudanet/promptpal/internal/server/jwt"
	"github.com/iudanet/promptpal/internal/server/middleware"
	"github.com/iudanet/promptpal/internal/server/service"
	"github.com/iudanet/promptpal/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the PromptPal HTTP API server.

The server applies pending migrations on start and shuts down gracefully
on Ctrl+C or SIGTERM.

Examples:
  promptpal-server serve
  promptpal-server serve --addr :8080 --db /var/lib/promptpal/data.db
  PROMPTPAL_JWT_SECRET=... promptpal-server serve --env production`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		generated, err := cfg.EnsureSecret()
		if err != nil {
			return err
		}
		if generated {
			logger.Warn("jwt.secret is not set, using a random secret: tokens will not survive restart")
		}

		store, err := openStorage(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close database", slog.String("error", err.Error()))
			}
		}()

		tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
		authService := service.NewAuthService(logger, store, tokens)
		promptService := service.NewPromptService(logger, store, cfg.Public.Limit)

		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
		defer limiter.Stop()

		handler := server.Router(server.Deps{
			Logger:         logger,
			Auth:           authService,
			Prompts:        promptService,
			DB:             store,
			AuthLimiter:    limiter,
			Version:        version.Version,
			Env:            cfg.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})

		srv := server.New(server.Config{
			Address:         cfg.HTTP.Address,
			ReadTimeout:     cfg.HTTP.ReadTimeout,
			WriteTimeout:    cfg.HTTP.WriteTimeout,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		}, handler, logger)

		logger.Info("PromptPal server starting",
			slog.String("version", version.Version),
			slog.String("env", cfg.Env))

		return srv.Start(ctx)
	},
}
