package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealsafe/backend/internal/types"
)

func TestCalculateScore(t *testing.T) {
	calc := NewScoreCalculator(NewRuleEngine())

	t.Run("ramen with hypertension", func(t *testing.T) {
		score := calc.CalculateScore("신라면", []string{"hypertension"}, nil)
		assert.Equal(t, 75, score)
		assert.Equal(t, "B", calc.GetGrade(score))
		assert.Equal(t, RecommendationSafe, calc.GetRecommendationLevel(score))
	})

	t.Run("chicken with three diseases", func(t *testing.T) {
		score := calc.CalculateScore("후라이드 치킨", []string{"hypertension", "diabetes", "hyperlipidemia"}, nil)
		assert.Equal(t, 62, score)
		assert.Equal(t, "B", calc.GetGrade(score))
		assert.Equal(t, RecommendationCaution, calc.GetRecommendationLevel(score))
	})

	t.Run("clamped at zero", func(t *testing.T) {
		nutrition := &types.NutritionFacts{Sodium: 6000, Fat: 300, Calories: 5000, Carbohydrates: 500}
		score := calc.CalculateScore("햄 젓갈 라면 짬뽕 찌개", []string{"hypertension", "diabetes", "hyperlipidemia"}, nutrition)
		assert.Equal(t, 0, score)
	})

	t.Run("no penalties yields full score", func(t *testing.T) {
		assert.Equal(t, 100, calc.CalculateScore("비빔밥", nil, nil))
	})
}

func TestGetGrade(t *testing.T) {
	calc := NewScoreCalculator(NewRuleEngine())

	tests := []struct {
		score int
		want  string
	}{
		{100, "A"},
		{80, "A"},
		{79, "B"},
		{60, "B"},
		{59, "C"},
		{40, "C"},
		{39, "D"},
		{20, "D"},
		{19, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calc.GetGrade(tt.score), "score %d", tt.score)
	}
}

func TestGetRecommendationLevel(t *testing.T) {
	calc := NewScoreCalculator(NewRuleEngine())

	tests := []struct {
		score int
		want  string
	}{
		{100, RecommendationSafe},
		{70, RecommendationSafe},
		{69, RecommendationCaution},
		{40, RecommendationCaution},
		{39, RecommendationAvoid},
		{0, RecommendationAvoid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calc.GetRecommendationLevel(tt.score), "score %d", tt.score)
	}
}
