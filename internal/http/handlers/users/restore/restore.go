// Package restore реализует HTTP-обработчик восстановления отозванного пользователя.
package restore

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
)

// Service снимает с пользователя отметку об отзыве.
type Service interface {
	Restore(ctx context.Context, login string) bool
}

// Handler обрабатывает POST /restore/{login}.
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
// @Summary Восстановление пользователя
// @Description Снимает отзыв с пользователя. Восстановление активного пользователя не является ошибкой. Только для администраторов.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param login path string true "Логин"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/restore/{login} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.restore"

	login := chi.URLParam(r, "login")
	if !h.service.Restore(r.Context(), login) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	h.log.Info("user restored",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		sl.Login(login),
	)
	render.JSON(w, r, response.OK())
}
