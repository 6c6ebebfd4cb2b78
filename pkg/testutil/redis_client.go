package testutil

import (
	"context"
	"time"

	"github.com/questx-lab/questkit/pkg/xredis"
)

type MockRedisClient struct {
	ExistFunc func(ctx context.Context, key string) (bool, error)
	DelFunc   func(ctx context.Context, key ...string) error
	KeysFunc  func(ctx context.Context, pattern string) ([]string, error)
	GetFunc   func(ctx context.Context, key string) (string, error)
	SetExFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", xredis.ErrNotFound
}

func (m *MockRedisClient) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetExFunc != nil {
		return m.SetExFunc(ctx, key, value, ttl)
	}

	return nil
}
