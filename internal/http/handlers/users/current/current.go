// Package current реализует HTTP-обработчик профиля текущего пользователя.
package current

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
)

// Handler отдаёт профиль владельца токена.
type Handler struct {
	log *slog.Logger
}

// New создает Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Мой профиль
// @Description Профиль текущего пользователя. Отозванным пользователям недоступен.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Учётная запись отозвана"
// @Router /api/v1/users/get/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.current"

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		h.log.Error("user not found in context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
