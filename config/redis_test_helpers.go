package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// UseRedisClient replaces the rate limiter's Redis client, typically with a
// redismock client or nil, and returns a func that puts the previous client
// back. Tests only.
func UseRedisClient(client *redis.Client) (restore func()) {
	previous := redisClient
	redisClient = client
	return func() { redisClient = previous }
}

// ResetRedisClient forgets the client and lets the next ConnectRedis dial
// again. Tests only.
func ResetRedisClient() {
	redisClient = nil
	redisOnce = sync.Once{}
}
