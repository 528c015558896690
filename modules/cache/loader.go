package cache

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"
)

// Loader reads through a Store, collapsing concurrent misses on the same key
// into a single load. Store failures are logged and fall back to the loader.
type Loader struct {
	store Store
	group singleflight.Group
}

// NewLoader creates a Loader over s. A nil s behaves like Noop.
func NewLoader(s Store) *Loader {
	if s == nil {
		s = Noop{}
	}
	return &Loader{store: s}
}

// Fetch returns the cached value at key or loads, caches and returns it.
func Fetch[T any](ctx context.Context, l *Loader, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := l.store.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[cache] Warning: get %s failed, reading from database: %v", key, err)
	}
	if found {
		return cached, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.store.Set(ctx, key, val); err != nil {
			log.Printf("[cache] Warning: set %s failed: %v", key, err)
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops every key matching pattern.
func (l *Loader) Invalidate(ctx context.Context, pattern string) {
	if err := l.store.DeletePattern(ctx, pattern); err != nil {
		log.Printf("[cache] Warning: invalidate %s failed: %v", pattern, err)
	}
}
