package querycache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/questx-lab/questkit/pkg/xredis"
)

const redisNamespace = "questkit:query:"

// redisStore shares cached queries between processes, so the sync dedup
// window also holds across several hosts of the same user.
type redisStore struct {
	client xredis.Client
}

func NewRedisStore(client xredis.Client) *redisStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, redisNamespace+string(key))
	if err != nil {
		if errors.Is(err, xredis.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return []byte(value), true, nil
}

func (s *redisStore) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	return s.client.SetEx(ctx, redisNamespace+string(key), string(value), ttl)
}

func (s *redisStore) DeletePrefix(ctx context.Context, prefix Key) error {
	nested, err := s.client.Keys(ctx, redisNamespace+escapePattern(string(prefix))+keySeparator+"*")
	if err != nil {
		return err
	}

	return s.client.Del(ctx, append(nested, redisNamespace+string(prefix))...)
}

func escapePattern(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
