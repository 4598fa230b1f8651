package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware разрешает кросс-доменные запросы браузерного клиента.
// Пустой allowedOrigins разрешает любой origin.
func CORSMiddleware(logger *slog.Logger, allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:         600,
	}
	if len(allowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	logger.Debug("CORS configured", slog.Any("allowed_origins", opts.AllowedOrigins))

	return cors.New(opts).Handler
}
