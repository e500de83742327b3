package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mealsafe/backend/internal/types"
)

const generalInfoKeyPrefix = "food:general_info:"

// GeneralInfoCache is the durable, food-name-keyed store of previously
// generated nutrition and general pros/cons facts. A hit skips LLM general
// info generation entirely. Lookup is exact-key only; the boundary layer is
// responsible for key normalization. An in-process LRU fronts Redis for hot
// foods.
type GeneralInfoCache struct {
	redis *redis.Client
	hot   *lru.Cache[string, *types.GeneralFoodInfo]
	ttl   time.Duration
}

// NewGeneralInfoCache creates the cache. ttl=0 keeps entries forever; a
// positive ttl expires them, which is the configurable answer to general
// facts going stale.
func NewGeneralInfoCache(redisClient *redis.Client, ttl time.Duration) (*GeneralInfoCache, error) {
	hot, err := lru.New[string, *types.GeneralFoodInfo](256)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &GeneralInfoCache{
		redis: redisClient,
		hot:   hot,
		ttl:   ttl,
	}, nil
}

// Get returns the cached entry for foodName or (nil, nil) on a miss.
// Entries with a blank food name are invalid; they are purged and reported
// as a miss. Redis failures degrade to a miss. Hot-tier entries honor the
// configured ttl; Redis expires its own copy on the same clock.
func (c *GeneralInfoCache) Get(ctx context.Context, foodName string) (*types.GeneralFoodInfo, error) {
	if info, ok := c.hot.Get(foodName); ok {
		if c.ttl > 0 && time.Since(info.CreatedAt) >= c.ttl {
			c.hot.Remove(foodName)
		} else {
			return info, nil
		}
	}

	data, err := c.redis.Get(ctx, generalInfoKeyPrefix+foodName).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Printf("[GeneralInfoCache] get failed for %q: %v", foodName, err)
		return nil, nil
	}

	var info types.GeneralFoodInfo
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("[GeneralInfoCache] corrupt entry for %q, purging: %v", foodName, err)
		c.purge(ctx, foodName)
		return nil, nil
	}
	if info.FoodName == "" {
		log.Printf("[GeneralInfoCache] invalid entry for %q (blank food name), purging", foodName)
		c.purge(ctx, foodName)
		return nil, nil
	}

	c.hot.Add(foodName, &info)
	return &info, nil
}

// Put upserts the entry under foodName. Last write wins; the underlying
// store's atomicity covers concurrent writers.
func (c *GeneralInfoCache) Put(ctx context.Context, foodName string, info *types.GeneralFoodInfo) error {
	if info.CreatedAt.IsZero() {
		info.CreatedAt = time.Now()
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal general info: %w", err)
	}
	if err := c.redis.Set(ctx, generalInfoKeyPrefix+foodName, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store general info: %w", err)
	}

	c.hot.Add(foodName, info)
	return nil
}

func (c *GeneralInfoCache) purge(ctx context.Context, foodName string) {
	c.hot.Remove(foodName)
	if err := c.redis.Del(ctx, generalInfoKeyPrefix+foodName).Err(); err != nil {
		log.Printf("[GeneralInfoCache] purge failed for %q: %v", foodName, err)
	}
}
