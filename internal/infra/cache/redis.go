package cache

import (
	"context"

	"github.com/activitae/cra-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// New connects to Redis when enabled. A nil client with a nil error means
// caching is turned off; callers fall back to the database.
func New(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func Close(rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}
