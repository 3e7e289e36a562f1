package cache

import (
	"context"
	"encoding/json"
)

// Cache stores serialized values under keys, grouped by tags for bulk eviction.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, tags ...string) error
	EvictByTag(ctx context.Context, tag string) error
}

// GetOrCreate returns the cached value for key or builds it with factory and stores it.
// Cache failures never fail the call; the factory result is returned instead.
func GetOrCreate[T any](ctx context.Context, c Cache, key string, tags []string, factory func(ctx context.Context) (T, error)) (T, error) {
	if raw, ok, err := c.Get(ctx, key); err == nil && ok {
		var cached T
		if json.Unmarshal(raw, &cached) == nil {
			return cached, nil
		}
	}
	value, err := factory(ctx)
	if err != nil {
		return value, err
	}
	if raw, err := json.Marshal(value); err == nil {
		_ = c.Set(ctx, key, raw, tags...)
	}
	return value, nil
}

type Noop struct{}

func NewNoop() Noop {
	return Noop{}
}

func (Noop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []byte, ...string) error {
	return nil
}

func (Noop) EvictByTag(context.Context, string) error {
	return nil
}
