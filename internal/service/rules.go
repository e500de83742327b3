package service

import (
	"strings"

	"github.com/mealsafe/backend/internal/types"
)

// Severity buckets for nutrition risk factors. Each bucket has a fixed
// multiplier and a per-factor cap.
const (
	severityHigh   = "high"
	severityMedium = "medium"
	severityLow    = "low"
)

// nutritionRiskFactor flags one nutrient threshold for a disease.
type nutritionRiskFactor struct {
	Nutrient  string
	Threshold float64
	Severity  string
}

// foodTypeRisk penalizes foods whose name contains a risky substring.
type foodTypeRisk struct {
	Substring string
	Penalty   int
}

// diseaseRule is the full rule record for one disease identifier.
type diseaseRule struct {
	RiskFactors []nutritionRiskFactor
	FoodTypes   []foodTypeRisk
}

// diseaseRules maps disease identifiers to their scoring rules. Unknown
// identifiers contribute zero penalty.
var diseaseRules = map[string]diseaseRule{
	"hypertension": {
		RiskFactors: []nutritionRiskFactor{
			{Nutrient: "sodium", Threshold: 600, Severity: severityHigh},
			{Nutrient: "fat", Threshold: 15, Severity: severityMedium},
		},
		FoodTypes: []foodTypeRisk{
			{Substring: "라면", Penalty: 20},
			{Substring: "짬뽕", Penalty: 18},
			{Substring: "젓갈", Penalty: 22},
			{Substring: "찌개", Penalty: 12},
			{Substring: "햄", Penalty: 15},
		},
	},
	"diabetes": {
		RiskFactors: []nutritionRiskFactor{
			{Nutrient: "carbohydrates", Threshold: 60, Severity: severityHigh},
			{Nutrient: "calories", Threshold: 600, Severity: severityMedium},
		},
		FoodTypes: []foodTypeRisk{
			{Substring: "케이크", Penalty: 22},
			{Substring: "콜라", Penalty: 20},
			{Substring: "빙수", Penalty: 18},
			{Substring: "설탕", Penalty: 15},
			{Substring: "과자", Penalty: 12},
		},
	},
	"hyperlipidemia": {
		RiskFactors: []nutritionRiskFactor{
			{Nutrient: "fat", Threshold: 20, Severity: severityHigh},
			{Nutrient: "calories", Threshold: 700, Severity: severityMedium},
		},
		FoodTypes: []foodTypeRisk{
			{Substring: "치킨", Penalty: 23},
			{Substring: "삼겹살", Penalty: 20},
			{Substring: "튀김", Penalty: 18},
			{Substring: "버터", Penalty: 15},
			{Substring: "피자", Penalty: 15},
		},
	},
	"kidney_disease": {
		RiskFactors: []nutritionRiskFactor{
			{Nutrient: "sodium", Threshold: 500, Severity: severityHigh},
			{Nutrient: "protein", Threshold: 30, Severity: severityMedium},
		},
		FoodTypes: []foodTypeRisk{
			{Substring: "곱창", Penalty: 18},
			{Substring: "육포", Penalty: 15},
			{Substring: "바나나", Penalty: 10},
		},
	},
	"gastritis": {
		RiskFactors: []nutritionRiskFactor{
			{Nutrient: "fat", Threshold: 25, Severity: severityMedium},
		},
		FoodTypes: []foodTypeRisk{
			{Substring: "매운", Penalty: 18},
			{Substring: "커피", Penalty: 12},
			{Substring: "탄산", Penalty: 10},
		},
	},
}

// severityWeights gives (multiplier, cap) per severity bucket.
var severityWeights = map[string]struct {
	Multiplier float64
	Cap        float64
}{
	severityHigh:   {Multiplier: 15, Cap: 30},
	severityMedium: {Multiplier: 10, Cap: 20},
	severityLow:    {Multiplier: 5, Cap: 10},
}

// totalNutritionPenaltyCap bounds the summed nutrition penalty.
const totalNutritionPenaltyCap = 60.0

// RuleEngine maps (food name, diseases, nutrition facts) to penalty points.
// Pure computation, no I/O, never fails.
type RuleEngine struct{}

// NewRuleEngine creates a new RuleEngine instance.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

// DetectFoodTypeRisks sums the penalty of every disease food-type substring
// found in the food name. All disease rules are evaluated independently;
// matches are case-sensitive substring containment.
func (e *RuleEngine) DetectFoodTypeRisks(foodName string, diseases []string) int {
	penalty := 0
	for _, disease := range diseases {
		rule, ok := diseaseRules[disease]
		if !ok {
			continue
		}
		for _, ft := range rule.FoodTypes {
			if strings.Contains(foodName, ft.Substring) {
				penalty += ft.Penalty
			}
		}
	}
	return penalty
}

// EvaluateNutritionRisks computes the nutrition penalty for the given facts.
// For each disease factor whose nutrient value exceeds its threshold the
// penalty is min(cap, value/threshold*multiplier); the summed total is capped
// at 60.
func (e *RuleEngine) EvaluateNutritionRisks(nutrition *types.NutritionFacts, diseases []string) int {
	if nutrition == nil {
		return 0
	}

	total := 0.0
	for _, disease := range diseases {
		rule, ok := diseaseRules[disease]
		if !ok {
			continue
		}
		for _, factor := range rule.RiskFactors {
			value := nutrientValue(nutrition, factor.Nutrient)
			if value <= factor.Threshold {
				continue
			}
			w := severityWeights[factor.Severity]
			penalty := value / factor.Threshold * w.Multiplier
			if penalty > w.Cap {
				penalty = w.Cap
			}
			total += penalty
		}
	}

	if total > totalNutritionPenaltyCap {
		total = totalNutritionPenaltyCap
	}
	return int(total + 0.5)
}

// BasePenaltyByDiseaseCount returns the flat penalty for carrying multiple
// diseases: 0->0, 1->5, 2->10, 3 or more->15.
func (e *RuleEngine) BasePenaltyByDiseaseCount(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 5
	case count == 2:
		return 10
	default:
		return 15
	}
}

func nutrientValue(n *types.NutritionFacts, nutrient string) float64 {
	switch nutrient {
	case "calories":
		return n.Calories
	case "sodium":
		return n.Sodium
	case "carbohydrates":
		return n.Carbohydrates
	case "protein":
		return n.Protein
	case "fat":
		return n.Fat
	}
	return 0
}
