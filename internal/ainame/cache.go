package ainame

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores generated name lists so identical requests do not pay for a
// second model call.
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, names []string, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis string values holding JSON arrays.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache wraps a connected client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "namesmith:ainames:"}
}

// Get returns the cached names for key. A miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false, fmt.Errorf("decode cached names: %w", err)
	}
	return names, true, nil
}

// Set stores names under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, names []string, ttl time.Duration) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode names: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// ConnectRedis parses a redis:// URL and verifies the server answers PING.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis not reachable: %w", err)
	}
	return client, nil
}

// cacheKey identifies a name request independent of keyword case.
func cacheKey(providers string, tone string, count int, keywords []string) string {
	h := sha256.New()
	h.Write([]byte(providers))
	h.Write([]byte{0})
	h.Write([]byte(tone))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(count)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.Join(keywords, ","))))
	return hex.EncodeToString(h.Sum(nil))
}
