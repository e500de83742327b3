package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsafe/backend/internal/types"
)

func TestGeneralInfoCache(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 0)
		require.NoError(t, err)

		info, err := cache.Get(ctx, "없는음식")
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("put then get round trips", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 0)
		require.NoError(t, err)

		stored := &types.GeneralFoodInfo{
			FoodName:         "신라면",
			GeneralBenefit:   "간편한 한 끼",
			GeneralHarm:      "나트륨이 높음",
			NutritionSummary: "고나트륨 식품",
		}
		require.NoError(t, cache.Put(ctx, "신라면", stored))
		assert.False(t, stored.CreatedAt.IsZero())

		got, err := cache.Get(ctx, "신라면")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "신라면", got.FoodName)
		assert.Equal(t, "간편한 한 끼", got.GeneralBenefit)
	})

	t.Run("hot tier serves repeated lookups", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 0)
		require.NoError(t, err)

		require.NoError(t, cache.Put(ctx, "김치찌개", &types.GeneralFoodInfo{FoodName: "김치찌개"}))
		// Delete from Redis; the hot tier still answers.
		require.NoError(t, client.Del(ctx, generalInfoKeyPrefix+"김치찌개").Err())

		got, err := cache.Get(ctx, "김치찌개")
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("blank food name entry is purged as a miss", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 0)
		require.NoError(t, err)

		require.NoError(t, client.Set(ctx, generalInfoKeyPrefix+"불량", `{"food_name":""}`, 0).Err())

		info, err := cache.Get(ctx, "불량")
		require.NoError(t, err)
		assert.Nil(t, info)
		assert.Equal(t, int64(0), client.Exists(ctx, generalInfoKeyPrefix+"불량").Val())
	})

	t.Run("corrupt entry is purged as a miss", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 0)
		require.NoError(t, err)

		require.NoError(t, client.Set(ctx, generalInfoKeyPrefix+"깨짐", "not-json", 0).Err())

		info, err := cache.Get(ctx, "깨짐")
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("positive ttl sets expiry", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, time.Hour)
		require.NoError(t, err)

		require.NoError(t, cache.Put(ctx, "유통기한", &types.GeneralFoodInfo{FoodName: "유통기한"}))
		ttl := client.TTL(ctx, generalInfoKeyPrefix+"유통기한").Val()
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("expired entry is a miss even when hot", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(client, 50*time.Millisecond)
		require.NoError(t, err)

		require.NoError(t, cache.Put(ctx, "라면사리", &types.GeneralFoodInfo{FoodName: "라면사리"}))
		time.Sleep(80 * time.Millisecond)

		info, err := cache.Get(ctx, "라면사리")
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestGeneralInfoCacheHotTierTTL(t *testing.T) {
	// An unreachable Redis isolates the hot tier: any lookup that falls
	// through degrades to a miss.
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	ctx := context.Background()

	t.Run("expired hot entry is dropped", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(down, 50*time.Millisecond)
		require.NoError(t, err)

		cache.hot.Add("신라면", &types.GeneralFoodInfo{
			FoodName:  "신라면",
			CreatedAt: time.Now().Add(-time.Minute),
		})

		info, err := cache.Get(ctx, "신라면")
		require.NoError(t, err)
		assert.Nil(t, info)
		assert.False(t, cache.hot.Contains("신라면"))
	})

	t.Run("fresh hot entry is served", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(down, time.Hour)
		require.NoError(t, err)

		cache.hot.Add("비빔밥", &types.GeneralFoodInfo{
			FoodName:  "비빔밥",
			CreatedAt: time.Now(),
		})

		info, err := cache.Get(ctx, "비빔밥")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "비빔밥", info.FoodName)
	})

	t.Run("zero ttl keeps entries forever", func(t *testing.T) {
		cache, err := NewGeneralInfoCache(down, 0)
		require.NoError(t, err)

		cache.hot.Add("된장찌개", &types.GeneralFoodInfo{
			FoodName:  "된장찌개",
			CreatedAt: time.Now().Add(-24 * time.Hour),
		})

		info, err := cache.Get(ctx, "된장찌개")
		require.NoError(t, err)
		require.NotNil(t, info)
	})
}
