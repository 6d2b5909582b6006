package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultCacheTTL is how long cached model replies are kept.
const DefaultCacheTTL = time.Hour

// ResponseCache stores raw model replies by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedClient serves repeated prompts from a ResponseCache. Cache errors are
// logged and otherwise ignored; only successful replies are stored.
type CachedClient struct {
	next   Client
	cache  ResponseCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps next with a response cache.
func NewCachedClient(next Client, cache ResponseCache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{next: next, cache: cache, ttl: ttl, logger: logger}
}

// CacheKey derives the cache key for a model and prompt.
func CacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "feedback-ai:" + hex.EncodeToString(sum[:])
}

// GenerateContent returns a cached reply when present, otherwise calls the wrapped client.
func (c *CachedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	key := CacheKey(c.next.GetModel(tier), prompt)

	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("response cache read failed", zap.Error(err))
	} else if ok {
		c.logger.Debug("response cache hit", zap.String("key", key))
		return cached, nil
	}

	text, err := c.next.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, text, c.ttl); err != nil {
		c.logger.Warn("response cache write failed", zap.Error(err))
	}
	return text, nil
}

// GetModel returns the wrapped client's model name for a tier
func (c *CachedClient) GetModel(tier ModelTier) string {
	return c.next.GetModel(tier)
}

// Close closes the wrapped client and the cache when it holds resources.
func (c *CachedClient) Close() error {
	err := c.next.Close()
	if closer, ok := c.cache.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// RedisCache is a ResponseCache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance named by a redis:// URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Get returns the cached value, reporting false on a miss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value with a TTL.
func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
