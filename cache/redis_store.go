package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stockplatform/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultSafetyExpiry bounds how long Redis keeps an entry. Reads still use
// the caller's TTL; this only stops a shared instance from growing forever.
const DefaultSafetyExpiry = 48 * time.Hour

type envelope struct {
	WrittenAt time.Time       `json:"writtenAt"`
	Value     json.RawMessage `json:"value"`
}

// RedisStore shares cached provider responses between processes. Values are
// stored as JSON and come back from Get as json.RawMessage; use Lookup.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	expiry  time.Duration
	timeout time.Duration
	now     Clock
	metrics *metrics.Metrics
}

func NewRedisStore(client *redis.Client, m *metrics.Metrics) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  "stockapi:",
		expiry:  DefaultSafetyExpiry,
		timeout: 2 * time.Second,
		now:     time.Now,
		metrics: m,
	}
}

func (s *RedisStore) Get(key string, ttl time.Duration) (any, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Redis GET failed")
		}
		s.metrics.CacheMiss()
		return nil, false
	}

	value, fresh, err := readEnvelope(raw, s.now(), ttl)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis entry is not a cache envelope")
	}
	if !fresh {
		s.metrics.CacheMiss()
		return nil, false
	}
	s.metrics.CacheHit()
	return value, true
}

func (s *RedisStore) Set(key string, value any) {
	data, err := encodeEnvelope(value, s.now())
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache value is not JSON encodable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+key, data, s.expiry).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis SET failed")
	}
}

func encodeEnvelope(value any, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{WrittenAt: now, Value: payload})
}

// readEnvelope applies the same freshness rule as MemoryStore: an entry whose
// age has reached ttl is stale.
func readEnvelope(raw []byte, now time.Time, ttl time.Duration) (json.RawMessage, bool, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, err
	}
	if now.Sub(env.WrittenAt) >= ttl {
		return nil, false, nil
	}
	return env.Value, true, nil
}
