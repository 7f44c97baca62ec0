// Package update реализует HTTP-обработчики частичного изменения пользователя:
// администратором по логину и самим пользователем.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/password"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

// Request — изменяемые поля. Отсутствующее поле не меняется.
type Request struct {
	Login    *string `json:"login,omitempty" validate:"omitempty,min=1,max=256"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max=72"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,oneof=female male unknown"`
	Birthday *string `json:"birthday,omitempty" example:"1990-05-17"`
}

// Service применяет изменения к записи target от имени actor.
type Service interface {
	Update(ctx context.Context, actor, target string, patch models.UserPatch) (models.ChangeResult, error)
}

// Handler обрабатывает PATCH /update/{login} и PATCH /update.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	self     bool
}

// New создает Handler, меняющий пользователя из параметра пути {login}.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// NewSelf создает Handler, меняющий текущего пользователя.
func NewSelf(log *slog.Logger, service Service) *Handler {
	h := New(log, service)
	h.self = true
	return h
}

// ServeHTTP godoc
// @Summary Изменение пользователя
// @Description Меняет переданные поля. Поле с текущим значением изменением не считается; если ничего не изменилось, result = no_change. Смена логина отзывает токены пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param login path string true "Логин (только для /update/{login})"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.ChangeResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав или учётная запись отозвана"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Логин занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/users/update/{login} [patch]
// @Router /api/v1/users/update [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.update"

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

	target := actor.Login
	if !h.self {
		target = chi.URLParam(r, "login")
	}

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	patch, err := req.patch()
	if err != nil {
		log.Info("invalid birthday", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Birthday can contain only date in format YYYY-MM-DD"))
		return
	}

	result, err := h.service.Update(r.Context(), actor.Login, target, patch)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(users.ErrUserNotFound.Error()))
		case errors.Is(err, users.ErrLoginExists):
			log.Info("login already exists", sl.Login(*req.Login))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(users.ErrLoginExists.Error()))
		case errors.Is(err, password.ErrTooLong):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(password.ErrTooLong.Error()))
		default:
			log.Error("failed to update user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update user"))
		}
		return
	}

	log.Info("update processed", sl.Login(target), slog.String("result", result.String()))
	render.JSON(w, r, response.StatusOKWithData(response.ChangeResponse{
		Result: result.String(),
	}))
}

func (req Request) patch() (models.UserPatch, error) {
	patch := models.UserPatch{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		patch.Gender = &g
	}
	if req.Birthday != nil {
		b, err := time.Parse(models.DateLayout, *req.Birthday)
		if err != nil {
			return models.UserPatch{}, err
		}
		patch.Birthday = &b
	}
	return patch, nil
}
