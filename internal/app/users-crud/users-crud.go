// Package userscrud собирает сервис учётных записей: каталог пользователей,
// хранилище токенов, cookie-сессии, метрики и HTTP-сервер.
package userscrud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/users-crud/internal/cache"
	"github.com/magabrotheeeer/users-crud/internal/config"
	"github.com/magabrotheeeer/users-crud/internal/http/cookiesession"
	"github.com/magabrotheeeer/users-crud/internal/lib/jwt"
	"github.com/magabrotheeeer/users-crud/internal/lib/password"
	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/metrics"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/auth"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
	"github.com/magabrotheeeer/users-crud/internal/session"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-приложение сервиса учётных записей.
type App struct {
	server *http.Server
	logger *slog.Logger
	cache  cache.Cache
}

// New создает приложение и заводит учётную запись администратора.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "userscrud.New"

	sessionCache, err := newCache(ctx, cfg.RedisConnection, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tokens := session.NewStore()
	m := metrics.New(registry, tokens.Count)
	hasher := password.New(cfg.Password.BcryptCost)

	directory := users.NewService(hasher, tokens, logger, users.WithMetrics(m))
	authService := auth.NewService(directory, tokens, hasher, logger, m)

	admin, err := directory.Bootstrap(ctx, models.NewUser{
		Login:    cfg.Bootstrap.Login,
		Password: cfg.Bootstrap.Password,
		Name:     cfg.Bootstrap.Name,
		Gender:   models.GenderUnknown,
	})
	if err != nil {
		_ = sessionCache.Close()
		return nil, fmt.Errorf("%s: bootstrap admin: %w", op, err)
	}
	logger.Info("bootstrap admin created", sl.Login(admin.Login))

	sessions := cookiesession.New(
		sessionCache,
		jwt.NewMaker(cfg.Session.SecretKey, cfg.Session.IdleTimeout),
		cfg.Session.CookieName,
		cfg.Session.CookieSecure,
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:     authService,
		Users:    directory,
		Sessions: sessions,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  sessionCache,
	}, nil
}

// Handler корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run обслуживает запросы до отмены ctx, затем мягко останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close session cache", sl.Err(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

// newCache выбирает хранилище cookie-сессий: Redis, если задан адрес, иначе память процесса.
func newCache(ctx context.Context, cfg config.RedisConnection, logger *slog.Logger) (cache.Cache, error) {
	if cfg.Address == "" {
		logger.Info("session cache: in-memory")
		return cache.NewMemory(), nil
	}
	rc, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("session cache: redis", slog.String("address", cfg.Address))
	return rc, nil
}
