package userscrud

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/users-crud/docs"
	"github.com/magabrotheeeer/users-crud/internal/http/cookiesession"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/health"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/active"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/create"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/current"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/get"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/older"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/remove"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/restore"
	"github.com/magabrotheeeer/users-crud/internal/http/handlers/users/update"
	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/services/auth"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

// Services зависимости HTTP-слоя.
type Services struct {
	Auth     *auth.Service
	Users    *users.Service
	Sessions *cookiesession.Manager
	Registry *prometheus.Registry
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// URLFormat не подключается: логины могут содержать точку.
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1/users", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth", login.New(logger, s.Auth, s.Sessions).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(s.Auth, s.Sessions, logger))
			r.Post("/logout", logout.New(logger, s.Auth, s.Sessions).ServeHTTP)

			// Самообслуживание, только для неотозванных
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireActive(logger))
				r.Get("/get/current", current.New(logger).ServeHTTP)
				r.Patch("/update", update.NewSelf(logger, s.Users).ServeHTTP)
			})

			// Администрирование
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/get/active", active.New(logger, s.Users).ServeHTTP)
				r.Get("/get/older", older.New(logger, s.Users).ServeHTTP)
				r.Get("/get/{login}", get.New(logger, s.Users).ServeHTTP)
				r.Post("/create", create.New(logger, s.Users).ServeHTTP)
				r.Patch("/update/{login}", update.New(logger, s.Users).ServeHTTP)
				r.Delete("/delete/{login}", remove.New(logger, s.Users).ServeHTTP)
				r.Post("/restore/{login}", restore.New(logger, s.Users).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
