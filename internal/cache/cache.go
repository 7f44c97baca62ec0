// Package cache хранит короткоживущие данные cookie-сессий.
//
// Значения сериализуются в JSON. Доступны две реализации интерфейса Cache:
// Redis для внешнего хранилища и Memory для работы без внешних зависимостей.
package cache

import (
	"context"
	"time"
)

// Cache описывает методы кэша с временем жизни записей.
type Cache interface {
	// Get читает значение по ключу в result. false, если ключа нет или он истёк.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение со временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение по ключу.
	Invalidate(ctx context.Context, key string) error
	// Close освобождает ресурсы.
	Close() error
}
