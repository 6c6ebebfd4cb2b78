package querycache

import (
	"context"
	"testing"
	"time"

	"github.com/questx-lab/questkit/pkg/testutil"
	"github.com/questx-lab/questkit/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	data := map[string]string{}
	ttls := map[string]time.Duration{}

	client := &testutil.MockRedisClient{
		GetFunc: func(_ context.Context, key string) (string, error) {
			v, ok := data[key]
			if !ok {
				return "", xredis.ErrNotFound
			}
			return v, nil
		},
		SetExFunc: func(_ context.Context, key, value string, ttl time.Duration) error {
			data[key] = value
			ttls[key] = ttl
			return nil
		},
		KeysFunc: func(_ context.Context, pattern string) ([]string, error) {
			require.Equal(t, "questkit:query:playstreak:*", pattern)
			return []string{"questkit:query:playstreak:1"}, nil
		},
		DelFunc: func(_ context.Context, keys ...string) error {
			for _, k := range keys {
				delete(data, k)
			}
			return nil
		},
	}

	store := NewRedisStore(client)

	_, ok, err := store.Get(ctx, "playstreak:1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "playstreak:1", []byte(`{"n":1}`), time.Minute))
	require.Equal(t, time.Minute, ttls["questkit:query:playstreak:1"])

	b, ok, err := store.Get(ctx, "playstreak:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"n":1}`, string(b))

	require.NoError(t, store.DeletePrefix(ctx, "playstreak"))
	_, ok, err = store.Get(ctx, "playstreak:1")
	require.NoError(t, err)
	require.False(t, ok)
}
