// Package users реализует справочник пользователей и протокол изменения записей:
// создание, чтение, частичное обновление, мягкое и жёсткое удаление, восстановление.
//
// Весь справочник защищён одним мьютексом: проверка уникальности и вставка,
// чтение и простановка метаданных изменения выполняются атомарно.
// Дорогие операции bcrypt выполняются вне блокировки.
package users

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/metrics"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

// Hasher хэширует и проверяет пароли.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// SessionStore выпускает токены и отзывает все токены логина.
type SessionStore interface {
	Issue(login string) (string, error)
	RevokeLogin(login string) int
}

type entry struct {
	user models.User
	seq  uint64 // порядок вставки, разрешает равные CreatedOn
}

// Service справочник пользователей в памяти процесса.
type Service struct {
	mu      sync.Mutex
	records map[string]*entry // канонический логин -> запись
	nextSeq uint64

	hasher   Hasher
	sessions SessionStore
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics включает учёт изменений в Prometheus.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService создает пустой справочник.
func NewService(hasher Hasher, sessions SessionStore, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		records:  make(map[string]*entry),
		hasher:   hasher,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap создает начальную учётную запись администратора от имени system.
func (s *Service) Bootstrap(ctx context.Context, admin models.NewUser) (models.User, error) {
	admin.Admin = true
	return s.Create(ctx, models.SystemLogin, admin)
}

// IsLoginUnique true, если ни одна запись (включая отозванные) не использует логин.
func (s *Service) IsLoginUnique(_ context.Context, login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.records[models.CanonicalLogin(login)]
	return !taken
}

// Create добавляет пользователя. Права создателя не проверяются,
// уникальность логина проверяется повторно под блокировкой.
func (s *Service) Create(ctx context.Context, creator string, in models.NewUser) (models.User, error) {
	const op = "users.Create"
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	key := models.CanonicalLogin(in.Login)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.records[key]; taken {
		s.metrics.Mutation("create", metrics.ResultConflict)
		return models.User{}, fmt.Errorf("%s: %w", op, ErrLoginExists)
	}

	e := &entry{
		user: models.User{
			ID:           uuid.NewString(),
			Login:        in.Login,
			PasswordHash: hash,
			Name:         in.Name,
			Gender:       in.Gender,
			Birthday:     dateOnly(in.Birthday),
			Admin:        in.Admin,
			CreatedOn:    s.now(),
			CreatedBy:    creator,
		},
		seq: s.nextSeq,
	}
	s.nextSeq++
	s.records[key] = e

	s.metrics.Mutation("create", metrics.ResultSuccess)
	s.log.Info("user created", sl.Login(in.Login), slog.String("created_by", creator), slog.Bool("admin", in.Admin))
	return e.user.Clone(), nil
}

// Get возвращает снимок записи по логину.
func (s *Service) Get(ctx context.Context, login string) (models.User, error) {
	const op = "users.Get"
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[models.CanonicalLogin(login)]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return e.user.Clone(), nil
}

// IssueToken выпускает токен доступа для ранее проверенного снимка записи.
// Токен выпускается под блокировкой справочника и только если запись по логину
// всё ещё та же (ID и хэш пароля совпадают) и не отозвана.
func (s *Service) IssueToken(ctx context.Context, verified models.User) (string, error) {
	const op = "users.IssueToken"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[models.CanonicalLogin(verified.Login)]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if e.user.ID != verified.ID || e.user.PasswordHash != verified.PasswordHash || !e.user.Active() {
		return "", fmt.Errorf("%s: %w", op, ErrStaleRecord)
	}

	token, err := s.sessions.Issue(e.user.Login)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ListActive возвращает логины активных пользователей в порядке создания.
func (s *Service) ListActive(ctx context.Context) ([]string, error) {
	const op = "users.ListActive"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.logins(func(u *models.User) bool { return u.Active() }), nil
}

// ListOlderThan возвращает логины пользователей, которым исполнилось age лет.
// Пользователи без даты рождения не попадают в выборку.
func (s *Service) ListOlderThan(ctx context.Context, age int) ([]string, error) {
	const op = "users.ListOlderThan"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if age < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAge)
	}
	// Дни рождения хранятся как полночь UTC, сравниваем с сегодняшней датой
	// по часам сервиса в той же зоне.
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.logins(func(u *models.User) bool {
		return u.Birthday != nil && !u.Birthday.AddDate(age, 0, 0).After(today)
	}), nil
}

func (s *Service) logins(match func(u *models.User) bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]*entry, 0, len(s.records))
	for _, e := range s.records {
		if match(&e.user) {
			selected = append(selected, e)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if !a.user.CreatedOn.Equal(b.user.CreatedOn) {
			return a.user.CreatedOn.Before(b.user.CreatedOn)
		}
		return a.seq < b.seq
	})

	result := make([]string, 0, len(selected))
	for _, e := range selected {
		result = append(result, e.user.Login)
	}
	return result
}

// Revoke мягко удаляет запись. Повторный вызов обновляет RevokedOn и RevokedBy.
// Все токены пользователя отзываются.
func (s *Service) Revoke(_ context.Context, login, revokedBy string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[models.CanonicalLogin(login)]
	if !ok {
		s.metrics.Mutation("revoke", metrics.ResultNotFound)
		return false
	}
	now := s.now()
	by := revokedBy
	e.user.RevokedOn = &now
	e.user.RevokedBy = &by
	s.sessions.RevokeLogin(e.user.Login)

	s.metrics.Mutation("revoke", metrics.ResultSuccess)
	s.log.Info("user revoked", sl.Login(e.user.Login), slog.String("revoked_by", revokedBy))
	return true
}

// Restore снимает отметку об отзыве.
func (s *Service) Restore(_ context.Context, login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[models.CanonicalLogin(login)]
	if !ok {
		s.metrics.Mutation("restore", metrics.ResultNotFound)
		return false
	}
	e.user.RevokedOn = nil
	e.user.RevokedBy = nil

	s.metrics.Mutation("restore", metrics.ResultSuccess)
	s.log.Info("user restored", sl.Login(e.user.Login))
	return true
}

// Delete безвозвратно удаляет запись и освобождает логин.
func (s *Service) Delete(_ context.Context, login string) bool {
	key := models.CanonicalLogin(login)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[key]
	if !ok {
		s.metrics.Mutation("delete", metrics.ResultNotFound)
		return false
	}
	delete(s.records, key)
	s.sessions.RevokeLogin(e.user.Login)

	s.metrics.Mutation("delete", metrics.ResultSuccess)
	s.log.Info("user deleted", sl.Login(e.user.Login))
	return true
}

// dateOnly отбрасывает время суток, оставляя календарную дату в UTC.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
