// Package login реализует HTTP-обработчик входа по логину и паролю.
//
// При успешной аутентификации возвращает токен доступа и, если настроены
// cookie-сессии, дублирует токен в сессию.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/users-crud/internal/http/cookiesession"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/services/auth"
)

// Request — учётные данные для входа.
type Request struct {
	Login    string `json:"login" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=72"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	validate *validator.Validate
}

// Service описывает аутентификацию по логину и паролю.
type Service interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
}

// Sessions открывает cookie-сессию для выданного токена.
type Sessions interface {
	Start(ctx context.Context, w http.ResponseWriter, token string) (cookiesession.Session, error)
}

// New создает Handler. sessions может быть nil, тогда cookie не выставляется.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет логин и пароль и выдаёт токен доступа. Отозванные пользователи войти не могут.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Токен доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/auth [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	token, err := h.service.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("login failed", sl.Login(req.Login))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if h.sessions != nil {
		if _, err := h.sessions.Start(r.Context(), w, token); err != nil {
			log.Error("failed to start cookie session", sl.Err(err))
		}
	}

	log.Info("login success", sl.Login(req.Login))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}
