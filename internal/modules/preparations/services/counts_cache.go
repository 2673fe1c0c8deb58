package services

import (
	"context"
	"encoding/json"
	"fmt"

	"pharma-prep-core/internal/infrastructure/database/redis"
	"pharma-prep-core/internal/modules/preparations/dto"
)

// RedisCountsCache cache Redis des comptages par statut, TTL du pattern cache_preparation_counts
type RedisCountsCache struct {
	redis *redis.Client
}

func NewRedisCountsCache(redisClient *redis.Client) *RedisCountsCache {
	return &RedisCountsCache{redis: redisClient}
}

// Get retourne nil sans erreur en cas d'absence
func (c *RedisCountsCache) Get(ctx context.Context) (*dto.Counts, error) {
	raw, err := c.redis.GetWithPattern(ctx, redis.PatternPreparationCounts)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var counts dto.Counts
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		_ = c.redis.DelWithPattern(ctx, redis.PatternPreparationCounts)
		return nil, fmt.Errorf("cache comptages illisible: %w", err)
	}
	return &counts, nil
}

func (c *RedisCountsCache) Set(ctx context.Context, counts *dto.Counts) error {
	payload, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.redis.SetWithPattern(ctx, redis.PatternPreparationCounts, string(payload))
}

func (c *RedisCountsCache) Invalidate(ctx context.Context) error {
	return c.redis.DelWithPattern(ctx, redis.PatternPreparationCounts)
}
