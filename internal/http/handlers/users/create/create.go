// Package create реализует HTTP-обработчик создания пользователя администратором.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

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

// Request — данные нового пользователя. Пустой gender означает "unknown".
type Request struct {
	Login    string `json:"login" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,max=256"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=female male unknown"`
	Birthday string `json:"birthday,omitempty" example:"1990-05-17"`
	Admin    bool   `json:"admin"`
}

// Service создает пользователя от имени creator.
type Service interface {
	Create(ctx context.Context, creator string, in models.NewUser) (models.User, error)
}

// Handler обрабатывает POST /create.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание пользователя
// @Description Создаёт пользователя. Логин уникален без учёта регистра, в том числе среди отозванных. Только для администраторов.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новый пользователь"
// @Success 201 {object} models.Profile
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав"
// @Failure 409 {object} response.ErrorResponse "Логин занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/users/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	creator, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
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

	in := models.NewUser{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
		Gender:   models.GenderUnknown,
		Admin:    req.Admin,
	}
	if req.Gender != "" {
		in.Gender = models.Gender(req.Gender)
	}
	if req.Birthday != "" {
		birthday, err := time.Parse(models.DateLayout, req.Birthday)
		if err != nil {
			log.Info("invalid birthday", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("field Birthday can contain only date in format YYYY-MM-DD"))
			return
		}
		in.Birthday = &birthday
	}

	user, err := h.service.Create(r.Context(), creator.Login, in)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrLoginExists):
			log.Info("login already exists", sl.Login(req.Login))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(users.ErrLoginExists.Error()))
		case errors.Is(err, password.ErrTooLong):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(password.ErrTooLong.Error()))
		default:
			log.Error("failed to create user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create user"))
		}
		return
	}

	log.Info("user created", sl.Login(user.Login))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
