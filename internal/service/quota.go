package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// API categories metered by the quota gate.
const (
	QuotaCategoryDrug       = "drug"
	QuotaCategoryRecipe     = "recipe"
	QuotaCategoryHealthFood = "health_food"
)

// warnThreshold is the fraction of the daily ceiling at which usage is
// logged as a warning.
const warnThreshold = 0.8

// QuotaGate meters daily calls per API category. Counters live in Redis so
// multiple instances share one ceiling; keys carry the local date and expire
// after 48h, which makes the midnight rollover implicit. Concurrent
// increments are not serialized beyond Redis atomicity, so a ceiling can be
// overshot by in-flight calls; the configured limits include headroom for
// that.
type QuotaGate struct {
	redis     *redis.Client
	limits    map[string]int
	location  *time.Location
	keyPrefix string
}

// NewQuotaGate creates a quota gate with per-category daily ceilings. The
// day boundary is computed in loc; pass nil for local time.
func NewQuotaGate(redisClient *redis.Client, limits map[string]int, loc *time.Location) *QuotaGate {
	if loc == nil {
		loc = time.Local
	}
	return &QuotaGate{
		redis:     redisClient,
		limits:    limits,
		location:  loc,
		keyPrefix: "quota:api_usage",
	}
}

func (q *QuotaGate) key(category string) string {
	day := time.Now().In(q.location).Format("2006-01-02")
	return fmt.Sprintf("%s:%s:%s", q.keyPrefix, category, day)
}

// TryAcquire reports whether one more call in the category fits under the
// daily ceiling and, when it does, records the usage. Redis failures are
// treated as quota exhausted so the caller falls back to synthetic data
// instead of hammering a metered API blind.
func (q *QuotaGate) TryAcquire(ctx context.Context, category string) bool {
	limit, ok := q.limits[category]
	if !ok || limit <= 0 {
		return false
	}

	current, err := q.redis.Get(ctx, q.key(category)).Int()
	if err != nil && err != redis.Nil {
		log.Printf("[QuotaGate] usage lookup failed for %s: %v", category, err)
		return false
	}
	if current >= limit {
		return false
	}
	if float64(current+1) >= float64(limit)*warnThreshold {
		log.Printf("[QuotaGate] %s usage at %d/%d (above %.0f%% threshold)", category, current+1, limit, warnThreshold*100)
	}

	if err := q.RecordUsage(ctx, category, 1); err != nil {
		log.Printf("[QuotaGate] failed to record usage for %s: %v", category, err)
	}
	return true
}

// CanUseAPI checks the counter without consuming quota.
func (q *QuotaGate) CanUseAPI(ctx context.Context, category string) bool {
	limit, ok := q.limits[category]
	if !ok || limit <= 0 {
		return false
	}
	current, err := q.redis.Get(ctx, q.key(category)).Int()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		log.Printf("[QuotaGate] usage lookup failed for %s: %v", category, err)
		return false
	}
	return current < limit
}

// RecordUsage adds n calls to the category's daily counter.
func (q *QuotaGate) RecordUsage(ctx context.Context, category string, n int) error {
	pipe := q.redis.Pipeline()
	pipe.IncrBy(ctx, q.key(category), int64(n))
	pipe.Expire(ctx, q.key(category), 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record quota usage: %w", err)
	}
	return nil
}

// Usage returns the current counter value for a category.
func (q *QuotaGate) Usage(ctx context.Context, category string) (int, error) {
	current, err := q.redis.Get(ctx, q.key(category)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota usage: %w", err)
	}
	return current, nil
}
