package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/promptpal/internal/server/handlers"
	"github.com/iudanet/promptpal/internal/server/jwt"
)

// Authenticator проверяет bearer токен
type Authenticator interface {
	Authenticate(token string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена.
// При успехе кладет user_id и username в контекст запроса.
func AuthMiddleware(logger *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(r.Context(), "Missing or malformed Authorization header",
					slog.String("path", r.URL.Path))
				handlers.WriteError(logger, w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := auth.Authenticate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "Invalid access token", slog.Any("error", err))
				handlers.WriteError(logger, w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := handlers.WithUser(r.Context(), claims.UserID(), claims.Username)

			logger.DebugContext(ctx, "User authenticated",
				slog.String("user_id", claims.UserID()),
				slog.String("username", claims.Username))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
