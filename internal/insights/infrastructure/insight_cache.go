package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const insightCacheTTL = 15 * time.Minute

// RedisInsightCache keeps successful AI payloads for a short TTL so repeated
// dashboard loads don't burn reasoning-service quota. Cache problems are
// logged and treated as misses; they never fail a request.
type RedisInsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInsightCache(redisURL string) (*RedisInsightCache, error) {
	if !strings.Contains(redisURL, "://") {
		redisURL = "redis://" + redisURL
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &RedisInsightCache{client: client, ttl: insightCacheTTL}, nil
}

func (c *RedisInsightCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("insight cache: get %s: %v", key, err)
		}
		return nil, false
	}
	return payload, true
}

func (c *RedisInsightCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("insight cache: set %s: %v", key, err)
	}
}

func (c *RedisInsightCache) Close() error {
	return c.client.Close()
}
