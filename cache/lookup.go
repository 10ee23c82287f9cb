package cache

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Lookup reads key and converts the value to T. In-memory stores return the
// value as it was set; the Redis store returns raw JSON, which is decoded
// into T. A value of any other shape counts as a miss.
func Lookup[T any](s Store, key string, ttl time.Duration) (T, bool) {
	var zero T
	raw, ok := s.Get(key, ttl)
	if !ok {
		return zero, false
	}

	switch v := raw.(type) {
	case T:
		return v, true
	case json.RawMessage:
		var out T
		if err := json.Unmarshal(v, &out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache entry could not be decoded")
			return zero, false
		}
		return out, true
	}
	return zero, false
}
