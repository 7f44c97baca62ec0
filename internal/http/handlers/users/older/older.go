// Package older реализует HTTP-обработчик выборки пользователей старше заданного возраста.
package older

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

// Service отдаёт логины пользователей, которым исполнилось age лет.
type Service interface {
	ListOlderThan(ctx context.Context, age int) ([]string, error)
}

// Handler обрабатывает запрос /get/older?age=N.
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
// @Summary Пользователи старше возраста
// @Description Логины пользователей, которым исполнилось age полных лет, в порядке создания. Пользователи без даты рождения не попадают в выборку.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param age query int true "Возраст в годах"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный возраст"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Router /api/v1/users/get/older [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.older"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil {
		log.Info("failed to parse age", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter age must be an integer"))
		return
	}

	logins, err := h.service.ListOlderThan(r.Context(), age)
	if err != nil {
		if errors.Is(err, users.ErrInvalidAge) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(users.ErrInvalidAge.Error()))
			return
		}
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": logins,
	}))
}
