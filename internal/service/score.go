package service

import "github.com/mealsafe/backend/internal/types"

// Recommendation levels returned by GetRecommendationLevel.
const (
	RecommendationSafe    = "safe"
	RecommendationCaution = "caution"
	RecommendationAvoid   = "avoid"
)

// ScoreCalculator combines rule-engine penalties into a 0-100 suitability
// score. This is the fast synchronous path used when no LLM analysis is
// wanted; it is independent of the orchestrator's LLM-derived score.
type ScoreCalculator struct {
	rules *RuleEngine
}

// NewScoreCalculator creates a new ScoreCalculator instance.
func NewScoreCalculator(rules *RuleEngine) *ScoreCalculator {
	return &ScoreCalculator{rules: rules}
}

// CalculateScore returns 100 minus the base, food-type and (when nutrition
// data is present) nutrition penalties, clamped to [0,100].
func (s *ScoreCalculator) CalculateScore(foodName string, diseases []string, nutrition *types.NutritionFacts) int {
	score := 100
	score -= s.rules.BasePenaltyByDiseaseCount(len(diseases))
	score -= s.rules.DetectFoodTypeRisks(foodName, diseases)
	if nutrition != nil {
		score -= s.rules.EvaluateNutritionRisks(nutrition, diseases)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// GetGrade maps a score to a letter grade: A>=80, B>=60, C>=40, D>=20, else F.
func (s *ScoreCalculator) GetGrade(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "F"
	}
}

// GetRecommendationLevel maps a score to a coarse recommendation:
// safe>=70, caution>=40, else avoid.
func (s *ScoreCalculator) GetRecommendationLevel(score int) string {
	switch {
	case score >= 70:
		return RecommendationSafe
	case score >= 40:
		return RecommendationCaution
	default:
		return RecommendationAvoid
	}
}
