package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/promptpal/internal/server/handlers"
	"github.com/iudanet/promptpal/internal/server/middleware"
	"github.com/iudanet/promptpal/internal/server/storage"
)

// AuthService объединяет операции, нужные auth handler'у и auth middleware
type AuthService interface {
	handlers.AuthService
	middleware.Authenticator
}

// Deps зависимости HTTP слоя
type Deps struct {
	Logger  *slog.Logger
	Auth    AuthService
	Prompts handlers.PromptService
	DB      storage.Pinger
	// AuthLimiter ограничивает register/login. nil отключает ограничение.
	AuthLimiter    *middleware.RateLimiter
	Version        string
	Env            string
	AllowedOrigins []string
}

// Router собирает все маршруты API и общие middleware
func Router(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.Logger, d.Auth)
	promptHandler := handlers.NewPromptHandler(d.Logger, d.Prompts)
	healthHandler := handlers.NewHealthHandler(d.Logger, d.DB, d.Version, d.Env)

	requireAuth := middleware.AuthMiddleware(d.Logger, d.Auth)
	limited := func(h http.HandlerFunc) http.Handler {
		if d.AuthLimiter == nil {
			return h
		}
		return middleware.RateLimitMiddleware(d.AuthLimiter)(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", healthHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth
	mux.Handle("POST /api/auth/register", limited(authHandler.Register))
	mux.Handle("POST /api/auth/login", limited(authHandler.Login))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))

	// Prompts
	mux.HandleFunc("GET /api/prompts/public", promptHandler.ListPublic)
	mux.Handle("GET /api/prompts", protected(promptHandler.ListMine))
	mux.Handle("POST /api/prompts", protected(promptHandler.Create))
	mux.Handle("GET /api/prompts/{id}", protected(promptHandler.Get))
	mux.Handle("PUT /api/prompts/{id}", protected(promptHandler.Update))
	mux.Handle("DELETE /api/prompts/{id}", protected(promptHandler.Delete))
	mux.Handle("POST /api/prompts/{id}/toggle", protected(promptHandler.Toggle))

	mux.HandleFunc("/", healthHandler.NotFound)

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware(d.Logger),
		middleware.LoggingMiddleware(d.Logger, "/health"),
		middleware.CORSMiddleware(d.Logger, d.AllowedOrigins),
	)
}
