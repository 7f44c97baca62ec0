// Package cookiesession дублирует токен доступа в короткоживущую серверную
// сессию, ключом к которой служит подписанная cookie.
//
// В cookie лежит JWT с идентификатором сессии, сам токен хранится в кэше
// под ключом "session:<sid>" и живёт, пока к нему обращаются чаще,
// чем раз в idle timeout.
package cookiesession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/users-crud/internal/cache"
	"github.com/magabrotheeeer/users-crud/internal/lib/jwt"
)

const keyPrefix = "session:"

// ErrNoSession cookie отсутствует, подделана или сессия истекла.
var ErrNoSession = errors.New("no session")

// Manager выдаёт, продлевает и закрывает cookie-сессии.
type Manager struct {
	cache  cache.Cache
	maker  *jwt.Maker
	name   string
	secure bool
}

// New создаёт Manager. Время простоя сессии берётся из maker.
func New(c cache.Cache, maker *jwt.Maker, cookieName string, secure bool) *Manager {
	return &Manager{
		cache:  c,
		maker:  maker,
		name:   cookieName,
		secure: secure,
	}
}

// Session открытая cookie-сессия.
type Session struct {
	ID    string
	Token string
}

// Start сохраняет токен в новой сессии и выставляет cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, token string) (Session, error) {
	const op = "cookiesession.Start"

	sess := Session{ID: uuid.NewString(), Token: token}
	if err := m.save(ctx, w, sess); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// Load достаёт сессию по cookie запроса.
func (m *Manager) Load(ctx context.Context, r *http.Request) (Session, error) {
	const op = "cookiesession.Load"

	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return Session{}, fmt.Errorf("%s: %w", op, ErrNoSession)
	}
	claims, err := m.maker.ParseToken(cookie.Value)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w: %w", op, ErrNoSession, err)
	}

	var token string
	found, err := m.cache.Get(ctx, keyPrefix+claims.SessionID(), &token)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found || token == "" {
		return Session{}, fmt.Errorf("%s: %w", op, ErrNoSession)
	}
	return Session{ID: claims.SessionID(), Token: token}, nil
}

// Touch продлевает сессию ещё на idle timeout.
func (m *Manager) Touch(ctx context.Context, w http.ResponseWriter, sess Session) error {
	const op = "cookiesession.Touch"
	if err := m.save(ctx, w, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// End удаляет сессию запроса, если она есть, и стирает cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	const op = "cookiesession.End"

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := m.maker.ParseToken(cookie.Value)
	if err != nil {
		return nil
	}
	if err := m.cache.Invalidate(ctx, keyPrefix+claims.SessionID()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Manager) save(ctx context.Context, w http.ResponseWriter, sess Session) error {
	ttl := m.maker.TTL()
	if err := m.cache.Set(ctx, keyPrefix+sess.ID, sess.Token, ttl); err != nil {
		return err
	}
	signed, err := m.maker.GenerateToken(sess.ID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
