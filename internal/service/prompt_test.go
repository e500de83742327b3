package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealsafe/backend/internal/types"
)

func TestBuildMedicalPrompt(t *testing.T) {
	age := 58
	pc := promptContext{
		Request: types.FoodSuitabilityRequest{
			FoodName: "신라면",
			Diseases: []string{"hypertension"},
		},
		Profile:   &types.UserHealthProfile{Age: &age, Gender: "female"},
		Medicines: []types.UserMedicine{{Name: "타이레놀", Dosage: "500mg", Frequency: "1일 3회"}},
		Nutrition: &types.NutritionFacts{Calories: 500, Sodium: 1790},
		Interactions: []types.MedicineInteractionResult{{
			MedicineName: "타이레놀",
			RiskLevel:    types.RiskCaution,
			Warnings:     []string{"음주 후 복용 금지"},
			DetectedPatterns: map[string][]string{
				"alcohol": {"음주"},
			},
		}},
		Guidelines: []types.DiseaseGuideline{GuidelineFor("hypertension")},
		PreComputed: []types.DrugFoodInteraction{{
			MedicineName: "타이레놀",
			RiskLevel:    types.RiskCaution,
		}},
	}

	prompt := buildMedicalPrompt(pc)

	assert.Contains(t, prompt, "## 분석 대상")
	assert.Contains(t, prompt, "음식: 신라면")
	assert.Contains(t, prompt, "나이: 58")
	assert.Contains(t, prompt, "타이레놀 (500mg, 1일 3회)")
	assert.Contains(t, prompt, "나트륨 1790mg")
	assert.Contains(t, prompt, "경고: 음주 후 복용 금지")
	assert.Contains(t, prompt, "감지된 패턴: alcohol")
	assert.Contains(t, prompt, "## 질환별 식이 가이드라인 (근거)")
	assert.Contains(t, prompt, "## 규칙 기반 사전 분석 결과")
	assert.Contains(t, prompt, "insufficient_data로 표시하십시오")
}

func TestBuildMedicalPromptEmptySections(t *testing.T) {
	prompt := buildMedicalPrompt(promptContext{
		Request: types.FoodSuitabilityRequest{FoodName: "비빔밥", Diseases: []string{"diabetes"}},
	})

	assert.Contains(t, prompt, "## 복용 중인 약물\n없음")
	assert.Contains(t, prompt, "영양 정보 없음")
	assert.Contains(t, prompt, "근거 없음")
}

func TestSortedCategories(t *testing.T) {
	patterns := map[string][]string{
		"timing":  {"식후"},
		"alcohol": {"술"},
		"dairy":   {"우유"},
	}
	assert.Equal(t, []string{"alcohol", "dairy", "timing"}, sortedCategories(patterns))
}
