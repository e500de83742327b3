package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsafe/backend/internal/types"
)

func TestClassifyInteraction(t *testing.T) {
	t.Run("empty facts yields insufficient data", func(t *testing.T) {
		result := ClassifyInteraction("타이레놀", nil, "맥주")
		assert.Equal(t, types.RiskInsufficientData, result.RiskLevel)
		assert.False(t, result.HasInteraction)
		assert.Nil(t, result.SpecificFoodInteraction)
	})

	t.Run("critical keyword in warning promotes to danger", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName: "와파린나트륨정",
			Warning:  "용량 변경 전 반드시 의사와 상담하십시오.",
		}}
		result := ClassifyInteraction("와파린", facts, "시금치 무침")
		assert.Equal(t, types.RiskDanger, result.RiskLevel)
	})

	t.Run("critical keyword only in interaction text does not promote", func(t *testing.T) {
		// criticals count only in warnings and precautions.
		facts := []types.MedicineFacts{{
			ItemName:    "테스트약",
			Interaction: "병용 시 즉시 효과가 감소할 수 있습니다.",
		}}
		result := ClassifyInteraction("테스트약", facts, "비빔밥")
		assert.NotEqual(t, types.RiskDanger, result.RiskLevel)
	})

	t.Run("caution keyword yields caution", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName:   "테스트약",
			Precaution: "기름진 식사는 삼가는 것이 좋습니다.",
		}}
		result := ClassifyInteraction("테스트약", facts, "비빔밥")
		assert.Equal(t, types.RiskCaution, result.RiskLevel)
	})

	t.Run("category detection yields caution and patterns", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName:    "타이레놀정",
			Interaction: "알코올과 병용 시 간 손상 위험이 증가합니다.",
		}}
		result := ClassifyInteraction("타이레놀", facts, "비빔밥")
		assert.Equal(t, types.RiskCaution, result.RiskLevel)
		assert.True(t, result.HasInteraction)
		assert.Contains(t, result.DetectedPatterns, "alcohol")
	})

	t.Run("specific food interaction is surfaced", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName:   "타이레놀정",
			Precaution: "음주 후 복용을 삼가십시오. 알코올은 간 손상 위험을 높입니다.",
		}}
		result := ClassifyInteraction("타이레놀", facts, "치킨과 맥주")
		require.NotNil(t, result.SpecificFoodInteraction)
		assert.Equal(t, "alcohol", result.SpecificFoodInteraction.Category)
		assert.Equal(t, "맥주", result.SpecificFoodInteraction.Keyword)
	})

	t.Run("food category without matching pattern stays nil", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName:   "테스트약",
			Precaution: "복용량을 조절하십시오.",
		}}
		result := ClassifyInteraction("테스트약", facts, "맥주")
		assert.Nil(t, result.SpecificFoodInteraction)
	})

	t.Run("clean text yields safe", func(t *testing.T) {
		facts := []types.MedicineFacts{{
			ItemName: "테스트약",
			Efficacy: "두통 완화",
		}}
		result := ClassifyInteraction("테스트약", facts, "비빔밥")
		assert.Equal(t, types.RiskSafe, result.RiskLevel)
		assert.False(t, result.HasInteraction)
	})

	t.Run("citation carries the drug label source", func(t *testing.T) {
		facts := []types.MedicineFacts{{ItemName: "테스트약", Warning: "주의"}}
		result := ClassifyInteraction("테스트약", facts, "비빔밥")
		assert.Equal(t, []string{citationDrugLabel}, result.Citations)
	})
}

type stubFactsSource struct {
	facts map[string][]types.MedicineFacts
	err   error
}

func (s *stubFactsSource) LookupMedicine(ctx context.Context, keyword string) ([]types.MedicineFacts, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.facts[keyword], nil
}

func TestAnalyzeMedicines(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		source := &stubFactsSource{facts: map[string][]types.MedicineFacts{
			"타이레놀": {{ItemName: "타이레놀정", Precaution: "음주 후 복용을 삼가십시오."}},
			"와파린":  {{ItemName: "와파린나트륨정", Warning: "반드시 의사와 상담하십시오."}},
		}}
		analyzer := NewInteractionAnalyzer(source)

		results := analyzer.AnalyzeMedicines(context.Background(), []types.UserMedicine{
			{Name: "타이레놀"}, {Name: "와파린"},
		}, "맥주")

		require.Len(t, results, 2)
		assert.Equal(t, "타이레놀", results[0].MedicineName)
		assert.Equal(t, types.RiskCaution, results[0].RiskLevel)
		assert.Equal(t, "와파린", results[1].MedicineName)
		assert.Equal(t, types.RiskDanger, results[1].RiskLevel)
	})

	t.Run("lookup failure degrades to insufficient data", func(t *testing.T) {
		analyzer := NewInteractionAnalyzer(&stubFactsSource{err: fmt.Errorf("api down")})

		results := analyzer.AnalyzeMedicines(context.Background(), []types.UserMedicine{{Name: "타이레놀"}}, "맥주")

		require.Len(t, results, 1)
		assert.Equal(t, types.RiskInsufficientData, results[0].RiskLevel)
	})
}
