// Package get реализует HTTP-обработчик чтения профиля пользователя по логину.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

// Service отдаёт снимок записи по логину.
type Service interface {
	Get(ctx context.Context, login string) (models.User, error)
}

// Handler обрабатывает GET /get/{login}.
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
// @Summary Профиль пользователя
// @Description Профиль пользователя по логину, включая отозванных. Только для администраторов.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param login path string true "Логин"
// @Success 200 {object} models.Profile
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/get/{login} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	login := chi.URLParam(r, "login")
	user, err := h.service.Get(r.Context(), login)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			log.Info("user not found", sl.Login(login))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(users.ErrUserNotFound.Error()))
			return
		}
		log.Error("failed to get user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
