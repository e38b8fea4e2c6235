package redis

import (
	"context"
	"dinebook/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 3 * time.Second

// New connects the client backing the cache, the availability snapshots and the rate limiter.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
		PoolSize: primary.PoolSize,
	})

	attempts := max(config.Cache.Redis.MaxRetry, 1)

	for attempt := range attempts {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err := client.Ping(ctx).Err()

		cancel()

		if err == nil {
			log.Info().
				Int("db", primary.DB).
				Str("addr", client.Options().Addr).
				Msg("Connected to Redis")

			return client
		}

		log.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to Redis, retrying")

		time.Sleep(time.Duration(config.Cache.Redis.RetryWaitTime) * time.Second)
	}

	log.Fatal().Int("attempts", attempts).Msg("Giving up connecting to Redis")

	return nil
}
