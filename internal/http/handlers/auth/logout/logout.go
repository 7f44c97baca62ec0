// Package logout реализует HTTP-обработчик выхода текущего пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

// Service отзывает токены пользователя.
type Service interface {
	Logout(ctx context.Context, user models.User)
}

// Sessions закрывает cookie-сессию запроса.
type Sessions interface {
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Handler обрабатывает выход из системы.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
}

// New создает Handler. sessions может быть nil.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Отзывает все токены текущего пользователя и закрывает cookie-сессию. Повторный выход не является ошибкой.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Router /api/v1/users/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	h.service.Logout(r.Context(), user)
	if h.sessions != nil {
		if err := h.sessions.End(r.Context(), w, r); err != nil {
			log.Error("failed to end cookie session", sl.Err(err))
		}
	}

	render.JSON(w, r, response.OK())
}
