package querycache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	value     []byte
	expiredAt time.Time
}

type memoryStore struct {
	clock   clockwork.Clock
	entries *xsync.MapOf[string, memoryEntry]
}

func NewMemoryStore(clock clockwork.Clock) *memoryStore {
	return &memoryStore{clock: clock, entries: xsync.NewMapOf[memoryEntry]()}
}

func (s *memoryStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	entry, ok := s.entries.Load(string(key))
	if !ok {
		return nil, false, nil
	}

	if !s.clock.Now().Before(entry.expiredAt) {
		s.entries.Delete(string(key))
		return nil, false, nil
	}

	return entry.value, true, nil
}

func (s *memoryStore) Set(_ context.Context, key Key, value []byte, ttl time.Duration) error {
	s.entries.Store(string(key), memoryEntry{value: value, expiredAt: s.clock.Now().Add(ttl)})
	return nil
}

func (s *memoryStore) DeletePrefix(_ context.Context, prefix Key) error {
	s.entries.Range(func(key string, _ memoryEntry) bool {
		if Key(key).Matches(prefix) {
			s.entries.Delete(key)
		}
		return true
	})

	return nil
}
