package cache

import (
	"time"

	"stockplatform/metrics"

	"github.com/patrickmn/go-cache"
)

// Store is a TTL cache where the caller picks the maximum age on every read.
// Entries are never evicted by the store itself.
type Store interface {
	Get(key string, ttl time.Duration) (any, bool)
	Set(key string, value any)
}

// Clock returns the current time. Tests swap it to simulate elapsed time.
type Clock func() time.Time

type entry struct {
	writtenAt time.Time
	value     any
}

// MemoryStore keeps entries in a go-cache instance with expiry and the
// janitor disabled; freshness is decided per read from the write time.
type MemoryStore struct {
	items   *cache.Cache
	now     Clock
	metrics *metrics.Metrics
}

type Option func(*MemoryStore)

func WithClock(c Clock) Option {
	return func(s *MemoryStore) { s.now = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *MemoryStore) { s.metrics = m }
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		items: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(key string, ttl time.Duration) (any, bool) {
	raw, found := s.items.Get(key)
	if !found {
		s.metrics.CacheMiss()
		return nil, false
	}
	e := raw.(entry)
	if s.now().Sub(e.writtenAt) >= ttl {
		s.metrics.CacheMiss()
		return nil, false
	}
	s.metrics.CacheHit()
	return e.value, true
}

func (s *MemoryStore) Set(key string, value any) {
	s.items.Set(key, entry{writtenAt: s.now(), value: value}, cache.NoExpiration)
}

// Len is the number of stored entries, fresh or not.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}
