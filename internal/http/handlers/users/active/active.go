// Package active реализует HTTP-обработчик списка активных пользователей.
package active

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
)

// Service отдаёт логины неотозванных пользователей.
type Service interface {
	ListActive(ctx context.Context) ([]string, error)
}

// Handler обрабатывает запрос списка активных пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активные пользователи
// @Description Логины неотозванных пользователей в порядке создания. Только для администраторов.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Router /api/v1/users/get/active [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.active"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	logins, err := h.service.ListActive(r.Context())
	if err != nil {
		log.Error("failed to list active users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Debug("active users listed", slog.Int("count", len(logins)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": logins,
	}))
}
