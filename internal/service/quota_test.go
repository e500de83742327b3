package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping Redis-backed test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestQuotaKeyCarriesLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	gate := NewQuotaGate(nil, map[string]int{QuotaCategoryDrug: 10}, loc)

	day := time.Now().In(loc).Format("2006-01-02")
	assert.Equal(t, fmt.Sprintf("quota:api_usage:drug:%s", day), gate.key(QuotaCategoryDrug))
}

func TestQuotaGate(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()

	t.Run("acquire until ceiling", func(t *testing.T) {
		gate := NewQuotaGate(client, map[string]int{QuotaCategoryDrug: 3}, time.UTC)

		for i := 0; i < 3; i++ {
			assert.True(t, gate.TryAcquire(ctx, QuotaCategoryDrug), "call %d", i)
		}
		assert.False(t, gate.TryAcquire(ctx, QuotaCategoryDrug))
		assert.False(t, gate.CanUseAPI(ctx, QuotaCategoryDrug))

		usage, err := gate.Usage(ctx, QuotaCategoryDrug)
		require.NoError(t, err)
		assert.Equal(t, 3, usage)
	})

	t.Run("unknown category is always exhausted", func(t *testing.T) {
		gate := NewQuotaGate(client, map[string]int{}, time.UTC)
		assert.False(t, gate.TryAcquire(ctx, "unknown"))
		assert.False(t, gate.CanUseAPI(ctx, "unknown"))
	})

	t.Run("categories are metered independently", func(t *testing.T) {
		client.FlushDB(ctx)
		gate := NewQuotaGate(client, map[string]int{QuotaCategoryDrug: 1, QuotaCategoryRecipe: 1}, time.UTC)

		assert.True(t, gate.TryAcquire(ctx, QuotaCategoryDrug))
		assert.False(t, gate.TryAcquire(ctx, QuotaCategoryDrug))
		assert.True(t, gate.TryAcquire(ctx, QuotaCategoryRecipe))
	})

	t.Run("record usage accumulates", func(t *testing.T) {
		client.FlushDB(ctx)
		gate := NewQuotaGate(client, map[string]int{QuotaCategoryHealthFood: 100}, time.UTC)

		require.NoError(t, gate.RecordUsage(ctx, QuotaCategoryHealthFood, 5))
		usage, err := gate.Usage(ctx, QuotaCategoryHealthFood)
		require.NoError(t, err)
		assert.Equal(t, 5, usage)
	})
}

func TestQuotaGateRedisDownTreatedAsExhausted(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	gate := NewQuotaGate(client, map[string]int{QuotaCategoryDrug: 10}, time.UTC)

	assert.False(t, gate.TryAcquire(context.Background(), QuotaCategoryDrug))
	assert.False(t, gate.CanUseAPI(context.Background(), QuotaCategoryDrug))
}
