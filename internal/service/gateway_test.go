package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsafe/backend/internal/models"
	"github.com/mealsafe/backend/internal/testdb"
	"github.com/mealsafe/backend/internal/types"
)

// newOfflineGateway builds a gateway with no API keys, so every network stage
// is skipped and the chains exercise only cache and synthetic stages.
func newOfflineGateway(t *testing.T) *ExternalDataGateway {
	t.Helper()
	db := testdb.SetupTestDB(t)
	// The quota gate is never consulted when keys are missing.
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	quota := NewQuotaGate(unreachable, map[string]int{}, time.UTC)
	return NewExternalDataGateway(db, quota, "", "")
}

func TestLookupMedicineOfflineChain(t *testing.T) {
	ctx := context.Background()

	t.Run("falls through to synthetic and caches it", func(t *testing.T) {
		gateway := newOfflineGateway(t)

		facts, err := gateway.LookupMedicine(ctx, "타이레놀")
		require.NoError(t, err)
		require.NotEmpty(t, facts)
		assert.True(t, facts[0].Synthetic)
		assert.Equal(t, "타이레놀정 500mg", facts[0].ItemName)

		// The synthetic result was written back; the second call hits cache.
		var count int64
		require.NoError(t, gateway.db.Model(&models.MedicineCache{}).Where("keyword = ?", "타이레놀").Count(&count).Error)
		assert.Equal(t, int64(1), count)

		again, err := gateway.LookupMedicine(ctx, "타이레놀")
		require.NoError(t, err)
		assert.Equal(t, facts[0].ItemName, again[0].ItemName)
	})

	t.Run("never returns empty", func(t *testing.T) {
		gateway := newOfflineGateway(t)

		facts, err := gateway.LookupMedicine(ctx, "완전히모르는약")
		require.NoError(t, err)
		require.NotEmpty(t, facts)
		assert.True(t, facts[0].Synthetic)
	})

	t.Run("cache hit short-circuits", func(t *testing.T) {
		gateway := newOfflineGateway(t)

		require.NoError(t, gateway.db.Create(&models.MedicineCache{
			Keyword:    "아스피린",
			ItemName:   "아스피린장용정 100mg",
			Precaution: "음주 시 주의",
		}).Error)

		facts, err := gateway.LookupMedicine(ctx, "아스피린")
		require.NoError(t, err)
		require.Len(t, facts, 1)
		assert.Equal(t, "아스피린장용정 100mg", facts[0].ItemName)
		assert.False(t, facts[0].Synthetic)
	})

	t.Run("blank item name cache rows are ignored", func(t *testing.T) {
		gateway := newOfflineGateway(t)

		require.NoError(t, gateway.db.Create(&models.MedicineCache{
			Keyword:  "빈항목",
			ItemName: "",
		}).Error)

		facts, err := gateway.LookupMedicine(ctx, "빈항목")
		require.NoError(t, err)
		require.NotEmpty(t, facts)
		// The stale row was skipped and the chain fell through to synthetic.
		assert.True(t, facts[0].Synthetic)
	})
}

func TestLookupHealthFoodOffline(t *testing.T) {
	gateway := newOfflineGateway(t)

	foods, err := gateway.LookupHealthFood(context.Background(), "홍삼")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.True(t, foods[0].Synthetic)
	assert.Equal(t, "홍삼", foods[0].ProductName)
}

func TestLookupRecipesWithoutKey(t *testing.T) {
	gateway := newOfflineGateway(t)

	recipes, err := gateway.LookupRecipes(context.Background(), "김치찌개")
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestSaveMedicineCacheRoundTrip(t *testing.T) {
	gateway := newOfflineGateway(t)
	ctx := context.Background()

	gateway.saveMedicineCache(ctx, "키워드", []types.MedicineFacts{
		{ItemName: "약품A", Warning: "경고문"},
		{ItemName: "약품B"},
	})

	facts := gateway.medicineFromCache(ctx, "키워드")
	require.Len(t, facts, 2)
	assert.Equal(t, "약품A", facts[0].ItemName)
	assert.Equal(t, "경고문", facts[0].Warning)
}
