package ratelimit

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// DefaultPrefix namespaces limiter keys in the backing store.
const DefaultPrefix = "sivakasi:ratelimit"

// NewStore returns a Redis-backed limiter store when client is set, otherwise an in-process one.
// A shared Redis store keeps counters consistent across replicas.
func NewStore(client *redis.Client, prefix string) (limiter.Store, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: time.Minute,
		}), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("ratelimit: redis store: %w", err)
	}
	return store, nil
}

// New builds a limiter allowing max requests per window.
func New(store limiter.Store, window time.Duration, max int64) *limiter.Limiter {
	return limiter.New(store, limiter.Rate{Period: window, Limit: max})
}
