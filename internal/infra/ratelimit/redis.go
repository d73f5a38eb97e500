package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts submissions in Redis so the limit holds across
// instances. It fails open: if Redis is unreachable the submission is
// allowed rather than blocking a visitor on an infrastructure problem.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	redisKey := fmt.Sprintf("ratelimit:submit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("ratelimit: redis incr failed, allowing request: %v", err)
		return true
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("ratelimit: redis expire failed: %v", err)
		}
	}

	return count <= int64(l.limit)
}
