package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-crud/internal/http/response"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

// RequireActive пропускает только неотозванных пользователей.
func RequireActive(log *slog.Logger) func(http.Handler) http.Handler {
	return require(log, "middlewarectx.RequireActive", "account is revoked", func(u models.User) bool {
		return u.Active()
	})
}

// RequireAdmin пропускает только действующих администраторов.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return require(log, "middlewarectx.RequireAdmin", "admin rights required", func(u models.User) bool {
		return u.Admin && u.Active()
	})
}

func require(log *slog.Logger, op, msg string, allowed func(models.User) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid access token"))
				return
			}
			if !allowed(user) {
				log.Info("access denied",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Login(user.Login),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(msg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
