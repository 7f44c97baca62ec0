package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory кэш в памяти процесса поверх ttlcache. Истёкшие записи не отдаются
// и удаляются фоновой горутиной, которую останавливает Close.
type Memory struct {
	items *ttlcache.Cache[string, []byte]
	stop  sync.Once
}

// NewMemory создает пустой кэш в памяти и запускает удаление истёкших записей.
func NewMemory() *Memory {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &Memory{items: items}
}

func (c *Memory) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Memory.Get"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	item := c.items.Get(key)
	if item == nil {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение. expiration <= 0 означает запись без срока.
func (c *Memory) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Memory.Set"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ttl := expiration
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, data, ttl)
	return nil
}

func (c *Memory) Invalidate(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *Memory) Close() error {
	c.stop.Do(c.items.Stop)
	return nil
}
