package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// InitRedis connects to the URL and pings it once. rediss:// URLs get a
// TLS 1.2 floor.
func InitRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	if opts.TLSConfig != nil {
		opts.TLSConfig.MinVersion = tls.VersionTLS12
	}

	redisClient := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err = redisClient.Ping(ctx).Result(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("Connected to Redis")

	return redisClient, nil
}
