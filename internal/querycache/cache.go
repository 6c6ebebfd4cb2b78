// Package querycache is the client-side cache of host queries. Entries are
// keyed by colon separated keys (e.g. "playstreak:42"), expire after a
// per-query stale time and are removed explicitly by prefix invalidation.
// Concurrent fetches of the same key are coalesced into one call.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"golang.org/x/sync/singleflight"
)

const keySeparator = ":"

type Key string

func NewKey(parts ...any) Key {
	s := make([]string, 0, len(parts))
	for _, p := range parts {
		s = append(s, fmt.Sprint(p))
	}

	return Key(strings.Join(s, keySeparator))
}

// Matches reports whether k equals prefix or is nested under it.
func (k Key) Matches(prefix Key) bool {
	return k == prefix || strings.HasPrefix(string(k), string(prefix)+keySeparator)
}

type Options struct {
	// StaleTime is how long a fetched value is served from the cache. Zero
	// disables caching, but concurrent fetches are still coalesced.
	StaleTime time.Duration

	// Retry is the number of additional attempts after a failed fetch.
	Retry      int
	RetryDelay time.Duration
}

type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix Key) error
}

type Cache struct {
	store Store
	clock clockwork.Clock
	group singleflight.Group

	// epoch changes on every invalidation so that a fetch which started
	// before an invalidation doesn't write its outdated value back.
	epoch atomic.Int64
}

func New(store Store, clock clockwork.Clock) *Cache {
	return &Cache{store: store, clock: clock}
}

// NewInMemory returns a cache backed by a process-local store.
func NewInMemory(clock clockwork.Clock) *Cache {
	return New(NewMemoryStore(clock), clock)
}

func Fetch[T any](
	ctx context.Context,
	c *Cache,
	key Key,
	opts Options,
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T

	if opts.StaleTime > 0 {
		if v, ok := load[T](ctx, c, key); ok {
			return v, nil
		}
	}

	epoch := c.epoch.Load()
	result, err, _ := c.group.Do(string(key), func() (any, error) {
		// A call which finished between the lookup above and this one may
		// have stored the value already.
		if opts.StaleTime > 0 {
			if v, ok := load[T](ctx, c, key); ok {
				return v, nil
			}
		}

		v, err := c.fetchWithRetry(ctx, opts, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}

		if opts.StaleTime > 0 && c.epoch.Load() == epoch {
			b, err := json.Marshal(v)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot encode cache key %s: %v", key, err)
			} else if err := c.store.Set(ctx, key, b, opts.StaleTime); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot write cache key %s: %v", key, err)
			}
		}

		return v, nil
	})
	if err != nil {
		return zero, err
	}

	v, _ := result.(T)
	return v, nil
}

func load[T any](ctx context.Context, c *Cache, key Key) (T, bool) {
	var v T
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read cache key %s: %v", key, err)
		return v, false
	}

	if !ok {
		return v, false
	}

	if err := json.Unmarshal(b, &v); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode cache key %s: %v", key, err)
		return v, false
	}

	return v, true
}

func (c *Cache) fetchWithRetry(
	ctx context.Context,
	opts Options,
	fn func(context.Context) (any, error),
) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= opts.Retry; attempt++ {
		if attempt > 0 && opts.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-c.clock.After(opts.RetryDelay):
			}
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

// Invalidate removes every entry whose key equals or is nested under one of
// the prefixes.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...Key) {
	c.epoch.Add(1)
	for _, prefix := range prefixes {
		if err := c.store.DeletePrefix(ctx, prefix); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot invalidate cache prefix %s: %v", prefix, err)
		}
	}
}
