// Package middlewarectx содержит HTTP middleware аутентификации и проверки прав.
//
// Authenticate разрешает токен из заголовка Authorization (или из cookie-сессии)
// в текущего пользователя и кладёт его снимок в контекст запроса.
// RequireActive и RequireAdmin отсекают отозванных пользователей и не-администраторов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/cookiesession"
	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ снимка текущего пользователя в контексте.
const User Key = "user"

// Resolver разрешает токен доступа в пользователя.
type Resolver interface {
	ResolveToken(ctx context.Context, token string) (models.User, bool)
}

// Sessions cookie-сессии, дублирующие токен.
type Sessions interface {
	Load(ctx context.Context, r *http.Request) (cookiesession.Session, error)
	Touch(ctx context.Context, w http.ResponseWriter, sess cookiesession.Session) error
}

// CurrentUser возвращает пользователя, положенного в контекст Authenticate.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(User).(models.User)
	return user, ok
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, User, user)
}

// Authenticate возвращает middleware, который требует действующий токен.
// Токен берётся из заголовка Authorization, а при его отсутствии из
// cookie-сессии; sessions может быть nil. Без токена отвечает 401.
func Authenticate(resolver Resolver, sessions Sessions, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := r.Header.Get("Authorization")
			var (
				sess    cookiesession.Session
				fromSes bool
			)
			if token == "" && sessions != nil {
				loaded, err := sessions.Load(r.Context(), r)
				if err == nil {
					sess, fromSes = loaded, true
					token = loaded.Token
				} else {
					log.Debug("no cookie session", sl.Err(err))
				}
			}

			user, ok := resolver.ResolveToken(r.Context(), token)
			if !ok {
				log.Info("unauthenticated request")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid access token"))
				return
			}

			if fromSes {
				if err := sessions.Touch(r.Context(), w, sess); err != nil {
					log.Error("failed to refresh cookie session", sl.Err(err))
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
