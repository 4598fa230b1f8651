package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/promptpal/internal/server/storage"
	"github.com/iudanet/promptpal/pkg/api"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	started time.Time
	logger  *slog.Logger
	db      storage.Pinger
	now     func() time.Time
	version string
	env     string
}

// NewHealthHandler создает новый handler для health check.
// Пустой env отображается как "development".
func NewHealthHandler(logger *slog.Logger, db storage.Pinger, version, env string) *HealthHandler {
	if env == "" {
		env = "development"
	}
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
		env:     env,
		started: time.Now(),
		now:     time.Now,
	}
}

// Health обрабатывает GET /health
// Возвращает 503, если база данных недоступна
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := api.HealthResponse{
		Status:      "ok",
		Version:     h.version,
		Env:         h.env,
		Uptime:      h.now().Sub(h.started).Seconds(),
		Database:    "connected",
		DBConnected: true,
	}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "database ping failed", slog.Any("error", err))
		resp.Status = "degraded"
		resp.Database = "disconnected"
		resp.DBConnected = false
		status = http.StatusServiceUnavailable
	}

	WriteJSON(h.logger, w, resp, status)
}

// Index обрабатывает GET /
// Краткое описание API
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	WriteJSON(h.logger, w, api.IndexResponse{
		Message: "PromptPal API is running!",
		Version: h.version,
		Endpoints: map[string]string{
			"health":  "/health",
			"auth":    "/api/auth",
			"prompts": "/api/prompts",
			"public":  "/api/prompts/public",
		},
	}, http.StatusOK)
}

// NotFound отвечает JSON ошибкой для неизвестных маршрутов
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(h.logger, w, "route not found", http.StatusNotFound)
}
