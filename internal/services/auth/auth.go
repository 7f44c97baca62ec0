// Package auth реализует вход по логину и паролю, разрешение токена доступа
// в текущего пользователя и выход из системы.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/metrics"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

// BearerPrefix необязательный префикс токена в заголовке Authorization.
const BearerPrefix = "Bearer "

// ErrInvalidCredentials неверный логин или пароль, либо учётная запись отозвана.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserProvider отдаёт снимок записи пользователя по логину и выпускает
// токен для проверенного снимка, если запись с тех пор не изменилась.
type UserProvider interface {
	Get(ctx context.Context, login string) (models.User, error)
	IssueToken(ctx context.Context, verified models.User) (string, error)
}

// PasswordVerifier проверяет пароль по хэшу.
type PasswordVerifier interface {
	Verify(hash, password string) bool
}

// TokenStore хранит соответствие токен -> логин.
type TokenStore interface {
	Lookup(token string) (string, bool)
	RevokeLogin(login string) int
}

// Service отвечает за аутентификацию и сессии.
type Service struct {
	users    UserProvider
	tokens   TokenStore
	verifier PasswordVerifier
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewService создает новый экземпляр Service. m может быть nil.
func NewService(users UserProvider, tokens TokenStore, verifier PasswordVerifier, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		metrics:  m,
		log:      log,
	}
}

// Authenticate проверяет логин и пароль и выпускает новый токен доступа.
// Отозванные учётные записи войти не могут.
func (s *Service) Authenticate(ctx context.Context, login, password string) (string, error) {
	const op = "auth.Authenticate"

	user, err := s.users.Get(ctx, login)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.metrics.AuthAttempt(metrics.ResultFailure)
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !user.Active() || !s.verifier.Verify(user.PasswordHash, password) {
		s.metrics.AuthAttempt(metrics.ResultFailure)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	// bcrypt выполняется без блокировки справочника: запись могли отозвать,
	// удалить или пересоздать, пока проверялся пароль.
	token, err := s.users.IssueToken(ctx, user)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) || errors.Is(err, users.ErrStaleRecord) {
			s.metrics.AuthAttempt(metrics.ResultFailure)
			s.log.Warn("user record changed during authentication", sl.Login(user.Login))
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AuthAttempt(metrics.ResultSuccess)
	s.log.Info("user authenticated", sl.Login(user.Login))
	return token, nil
}

// ResolveToken возвращает текущую запись владельца токена.
// false, если токен неизвестен или логин больше не существует.
func (s *Service) ResolveToken(ctx context.Context, token string) (models.User, bool) {
	token = strings.TrimSpace(strings.TrimPrefix(token, BearerPrefix))
	if token == "" {
		return models.User{}, false
	}

	login, ok := s.tokens.Lookup(token)
	if !ok {
		return models.User{}, false
	}
	user, err := s.users.Get(ctx, login)
	if err != nil {
		return models.User{}, false
	}
	return user, true
}

// Logout отзывает все токены пользователя. Повторный вызов ничего не делает.
func (s *Service) Logout(_ context.Context, user models.User) {
	removed := s.tokens.RevokeLogin(user.Login)
	s.log.Info("user logged out", sl.Login(user.Login), slog.Int("revoked_tokens", removed))
}
