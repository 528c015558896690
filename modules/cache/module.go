package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Config holds cache configuration.
type Config struct {
	RedisAddr string
	Prefix    string
	TTL       time.Duration
}

// Module owns the Redis connection as a mono module.
type Module struct {
	cfg   Config
	cache *Cache
}

var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the cache module. The client connects lazily; Start verifies it.
func NewModule(cfg Config) *Module {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Module{cfg: cfg, cache: New(client, cfg.Prefix, cfg.TTL)}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Cache returns the Redis-backed store.
func (m *Module) Cache() *Cache {
	return m.cache
}

// Start verifies the Redis connection.
func (m *Module) Start(ctx context.Context) error {
	if err := m.cache.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.cfg.RedisAddr, m.cfg.Prefix, m.cfg.TTL)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if err := m.cache.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health pings Redis and reports the counters.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	s := m.cache.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":     m.cfg.RedisAddr,
			"hits":     s.Hits,
			"misses":   s.Misses,
			"hit_rate": s.HitRate,
		},
	}
}
