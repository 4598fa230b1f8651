package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/service"
	"github.com/iudanet/promptpal/pkg/api"
)

// AuthService операции аутентификации, нужные handler'у
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	UserByID(ctx context.Context, userID string) (*models.User, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	auth   AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		WriteError(h.logger, w, decodeErrorMessage(err), http.StatusBadRequest)
		return
	}

	result, err := h.auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			slog.String("username", req.Username),
			slog.String("kind", service.KindOf(err).String()))
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, api.AuthResponse{
		Token: result.Token,
		User:  toAPIUser(result.User),
	}, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		WriteError(h.logger, w, decodeErrorMessage(err), http.StatusBadRequest)
		return
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, api.AuthResponse{
		Token: result.Token,
		User:  toAPIUser(result.User),
	}, http.StatusOK)
}

// Me обрабатывает GET /api/auth/me
// Требует AuthMiddleware
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		WriteError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.UserByID(ctx, userID)
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, api.MeResponse{User: toAPIUser(user)}, http.StatusOK)
}
