package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/users-crud/internal/lib/sl"
	"github.com/magabrotheeeer/users-crud/internal/metrics"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

// preparedPassword новый пароль, обработанный до захвата блокировки.
type preparedPassword struct {
	hash     string // новый хэш
	against  string // хэш, с которым сравнивался пароль
	samePass bool   // пароль совпадает с against
}

// Update применяет patch к записи target от имени actor.
//
// Порядок: сначала смена логина (конфликт отменяет всё обновление целиком),
// затем остальные поля. Поле, переданное с текущим значением, изменением
// не считается. Если ничего не изменилось, возвращается models.NoChange
// и метаданные изменения не трогаются.
func (s *Service) Update(ctx context.Context, actor, target string, patch models.UserPatch) (models.ChangeResult, error) {
	const op = "users.Update"
	if err := ctx.Err(); err != nil {
		return models.NoChange, fmt.Errorf("%s: %w", op, err)
	}

	var pw *preparedPassword
	if patch.Password != nil {
		p, err := s.preparePassword(target, *patch.Password)
		if err != nil {
			return models.NoChange, fmt.Errorf("%s: %w", op, err)
		}
		pw = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	oldKey := models.CanonicalLogin(target)
	e, ok := s.records[oldKey]
	if !ok {
		s.metrics.Mutation("update", metrics.ResultNotFound)
		return models.NoChange, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	u := &e.user
	oldLogin := u.Login
	changed := false

	if patch.Login != nil && *patch.Login != u.Login {
		newKey := models.CanonicalLogin(*patch.Login)
		if other, taken := s.records[newKey]; taken && other != e {
			s.metrics.Mutation("update", metrics.ResultConflict)
			return models.NoChange, fmt.Errorf("%s: %w", op, ErrLoginExists)
		}
		s.sessions.RevokeLogin(oldLogin)
		delete(s.records, oldKey)
		u.Login = *patch.Login
		s.records[newKey] = e
		changed = true
	}

	if patch.Name != nil && *patch.Name != u.Name {
		u.Name = *patch.Name
		changed = true
	}

	if pw != nil && !(pw.samePass && u.PasswordHash == pw.against) {
		u.PasswordHash = pw.hash
		changed = true
	}

	if patch.Birthday != nil {
		b := dateOnly(patch.Birthday)
		if u.Birthday == nil || !u.Birthday.Equal(*b) {
			u.Birthday = b
			changed = true
		}
	}

	if patch.Gender != nil && *patch.Gender != u.Gender {
		u.Gender = *patch.Gender
		changed = true
	}

	if !changed {
		s.metrics.Mutation("update", metrics.ResultNoChange)
		return models.NoChange, nil
	}

	modifiedBy := actor
	if models.CanonicalLogin(actor) == oldKey {
		modifiedBy = u.Login
	}
	now := s.now()
	u.ModifiedOn = &now
	u.ModifiedBy = &modifiedBy

	s.metrics.Mutation("update", metrics.ResultSuccess)
	s.log.Info("user updated",
		sl.Login(u.Login),
		slog.String("previous_login", oldLogin),
		slog.String("modified_by", modifiedBy),
	)
	return models.Modified, nil
}

// preparePassword хэширует новый пароль и сверяет его с текущим хэшем вне блокировки.
// Update затем проверяет, что хэш записи за это время не поменялся.
func (s *Service) preparePassword(target, plain string) (*preparedPassword, error) {
	s.mu.Lock()
	e, ok := s.records[models.CanonicalLogin(target)]
	var current string
	if ok {
		current = e.user.PasswordHash
	}
	s.mu.Unlock()

	if !ok {
		s.metrics.Mutation("update", metrics.ResultNotFound)
		return nil, ErrUserNotFound
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}
	return &preparedPassword{
		hash:     hash,
		against:  current,
		samePass: s.hasher.Verify(current, plain),
	}, nil
}
