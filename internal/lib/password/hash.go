// Package password реализует хэширование и проверку паролей на основе bcrypt.
//
// Hasher.Hash солит пароль, поэтому два вызова с одинаковым паролем дают разные
// хэши. Сравнивать хэши между собой нельзя, только через Hasher.Verify.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength предельная длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

// ErrTooLong пароль длиннее MaxLength байт.
var ErrTooLong = errors.New("password is longer than 72 bytes")

// Hasher хэширует пароли с фиксированной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// New создает Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хэшу.
// Сравнение выполняется bcrypt за постоянное время.
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
