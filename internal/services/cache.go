package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resume-reviewer/internal/models"
)

// ResultCache short-circuits the pipeline for inputs that were already
// analyzed. Both operations are best effort: a cache problem is never a
// request problem.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.MatchResult, bool)
	Set(ctx context.Context, key string, result *models.MatchResult)
}

// CacheKey derives the cache key from the exact input pair.
func CacheKey(resume []byte, jobDescription string) string {
	resumeHash := sha256.Sum256(resume)
	jobHash := sha256.Sum256([]byte(jobDescription))
	return fmt.Sprintf("analysis:%x:%x", resumeHash, jobHash)
}

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisResultCache connects to Redis. When the server is
// unreachable the cache degrades to a permanent miss instead of
// failing startup.
func NewRedisResultCache(addr, password string, ttl time.Duration, logger *zap.Logger) ResultCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing result cache", zap.Error(err))
		_ = client.Close()
		return &redisResultCache{client: nil, ttl: ttl, logger: logger}
	}

	return &redisResultCache{client: client, ttl: ttl, logger: logger}
}

// Get implements ResultCache.
func (c *redisResultCache) Get(ctx context.Context, key string) (*models.MatchResult, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var result models.MatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.Debug("cache entry corrupt, ignoring", zap.Error(err))
		return nil, false
	}

	return &result, true
}

// Set implements ResultCache.
func (c *redisResultCache) Set(ctx context.Context, key string, result *models.MatchResult) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Debug("cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", zap.Error(err))
	}
}
