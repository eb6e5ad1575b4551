package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCacheMiss is returned by a Store that holds no listing
var ErrCacheMiss = errors.New("directory: cache miss")

// Store is a shared cache tier for the listing
type Store interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, names []string, ttl time.Duration) error
}

// Cache fetches the listing once and serves it from memory afterwards.
// Failed fetches are not cached, so the next call tries again.
type Cache struct {
	source Lookup
	store  Store
	ttl    time.Duration
	log    *zap.Logger

	mu     sync.Mutex
	names  []string
	loaded bool
}

// NewCache wraps source. store may be nil.
func NewCache(source Lookup, store Store, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{source: source, store: store, ttl: ttl, log: log}
}

// ListNames returns the cached listing, loading it on first use
func (c *Cache) ListNames(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return clone(c.names), nil
	}

	if c.store != nil {
		names, err := c.store.Get(ctx)
		switch {
		case err == nil:
			c.keep(names)
			return clone(names), nil
		case !errors.Is(err, ErrCacheMiss):
			c.log.Warn("directory store read failed", zap.Error(err))
		}
	}

	names, err := c.source.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	c.keep(names)

	if c.store != nil {
		if err := c.store.Set(ctx, names, c.ttl); err != nil {
			c.log.Warn("directory store write failed", zap.Error(err))
		}
	}
	return clone(names), nil
}

// Reset drops the in-memory listing
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = nil
	c.loaded = false
}

func (c *Cache) keep(names []string) {
	c.names = clone(names)
	c.loaded = true
}

func clone(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
