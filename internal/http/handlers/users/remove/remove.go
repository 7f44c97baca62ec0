// Package remove реализует HTTP-обработчик удаления пользователя:
// мягкого (отзыв) по умолчанию и безвозвратного при hard=true.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
)

// Service отзывает или безвозвратно удаляет пользователя.
type Service interface {
	Revoke(ctx context.Context, login, revokedBy string) bool
	Delete(ctx context.Context, login string) bool
}

// Handler обрабатывает DELETE /delete/{login}.
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
// @Summary Удаление пользователя
// @Description По умолчанию отзывает пользователя (его можно восстановить). С hard=true удаляет запись и освобождает логин. Токены пользователя отзываются в обоих случаях. Только для администраторов.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param login path string true "Логин"
// @Param hard query bool false "Безвозвратное удаление"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный параметр hard"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/delete/{login} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	hard := false
	if raw := r.URL.Query().Get("hard"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			log.Info("failed to parse hard flag", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("query parameter hard must be a boolean"))
			return
		}
		hard = v
	}

	login := chi.URLParam(r, "login")
	var removed bool
	if hard {
		removed = h.service.Delete(r.Context(), login)
	} else {
		removed = h.service.Revoke(r.Context(), login, actor.Login)
	}
	if !removed {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	log.Info("user removed", sl.Login(login), slog.Bool("hard", hard), slog.String("by", actor.Login))
	render.JSON(w, r, response.OK())
}
