// Package session хранит соответствие токен доступа -> логин.
//
// Store держит только строки логинов и никогда не ссылается на запись
// пользователя: при переименовании или удалении записи справочник сам
// вызывает RevokeLogin.
package session

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/users-crud/internal/models"
)

// Store потокобезопасное хранилище токенов в памяти процесса.
type Store struct {
	mu     sync.Mutex
	tokens map[string]string // токен -> канонический логин
}

// NewStore создает пустое хранилище.
func NewStore() *Store {
	return &Store{tokens: make(map[string]string)}
}

// Issue выпускает новый токен для логина.
// Уже выданные токены этого логина остаются действительными.
func (s *Store) Issue(login string) (string, error) {
	const op = "session.Issue"
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token := base64.StdEncoding.EncodeToString(id[:])

	s.mu.Lock()
	s.tokens[token] = models.CanonicalLogin(login)
	s.mu.Unlock()

	return token, nil
}

// Lookup возвращает логин, которому принадлежит токен.
func (s *Store) Lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	login, ok := s.tokens[token]
	return login, ok
}

// Revoke удаляет один токен. Возвращает false, если токена не было.
func (s *Store) Revoke(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return false
	}
	delete(s.tokens, token)
	return true
}

// RevokeLogin удаляет все токены логина и возвращает их количество.
// Вызов для логина без токенов ничего не делает.
func (s *Store) RevokeLogin(login string) int {
	key := models.CanonicalLogin(login)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, owner := range s.tokens {
		if owner == key {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// Count число активных токенов.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
