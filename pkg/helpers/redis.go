package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient opens the shared Redis client used for sessions, one-time
// tokens and rate-limit counters.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
