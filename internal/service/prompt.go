package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mealsafe/backend/internal/types"
)

// medicalSystemPrompt instructs the model to ground every claim in the
// supplied evidence and to mark missing evidence instead of inferring.
const medicalSystemPrompt = `You are a clinical pharmacist and nutritionist assistant.
Analyze how suitable a food is for a patient given their diseases and medications.

Rules:
- Ground EVERY claim in the evidence sections provided. Do not use outside knowledge.
- When the evidence does not cover a question, say so explicitly and use the level "insufficient_data". Never guess.
- Respond ONLY with a JSON object of this exact shape:
{
  "interaction_assessment": {"level": "safe|caution|danger|insufficient_data", "evidence_summary": "", "detailed_analysis": "", "mechanism": "", "citations": []},
  "nutritional_risk": {"risk_factors": [], "description": "", "citations": []},
  "disease_specific_notes": [{"disease": "", "impact": "", "citations": []}],
  "drug_food_interactions": [{"medicine_name": "", "warnings": [], "recommendations": []}],
  "final_score": 0
}
- final_score is an integer 0-100 where 100 means completely suitable.
- Write narrative fields in Korean.`

// promptContext bundles every RAG artifact embedded in the analysis prompt.
type promptContext struct {
	Request      types.FoodSuitabilityRequest
	Profile      *types.UserHealthProfile
	Medicines    []types.UserMedicine
	Nutrition    *types.NutritionFacts
	Recipes      []types.Recipe
	Interactions []types.MedicineInteractionResult
	Guidelines   []types.DiseaseGuideline
	PreComputed  []types.DrugFoodInteraction
	GeneralInfo  *types.GeneralFoodInfo
}

// buildMedicalPrompt renders the structured user prompt for the medical
// analysis call.
func buildMedicalPrompt(pc promptContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## 분석 대상\n음식: %s\n질환: %s\n", pc.Request.FoodName, strings.Join(pc.Request.Diseases, ", "))
	if pc.Profile != nil {
		if pc.Profile.Age != nil {
			fmt.Fprintf(&b, "나이: %d\n", *pc.Profile.Age)
		}
		if pc.Profile.Gender != "" {
			fmt.Fprintf(&b, "성별: %s\n", pc.Profile.Gender)
		}
	}

	b.WriteString("\n## 복용 중인 약물\n")
	if len(pc.Medicines) == 0 {
		b.WriteString("없음\n")
	}
	for _, m := range pc.Medicines {
		fmt.Fprintf(&b, "- %s", m.Name)
		if m.Dosage != "" {
			fmt.Fprintf(&b, " (%s", m.Dosage)
			if m.Frequency != "" {
				fmt.Fprintf(&b, ", %s", m.Frequency)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## 영양 정보 (근거)\n")
	if pc.Nutrition == nil {
		b.WriteString("영양 정보 없음\n")
	} else {
		n := pc.Nutrition
		fmt.Fprintf(&b, "열량 %.0fkcal, 나트륨 %.0fmg, 탄수화물 %.1fg, 단백질 %.1fg, 지방 %.1fg\n",
			n.Calories, n.Sodium, n.Carbohydrates, n.Protein, n.Fat)
		if len(n.Citations) > 0 {
			fmt.Fprintf(&b, "출처: %s\n", strings.Join(n.Citations, ", "))
		}
	}

	if len(pc.Recipes) > 0 {
		b.WriteString("\n## 관련 레시피 (근거)\n")
		for _, r := range pc.Recipes {
			fmt.Fprintf(&b, "- %s (%s, %s) 열량 %.0fkcal 나트륨 %.0fmg\n",
				r.Name, r.Category, r.CookingMethod, r.Calories, r.Sodium)
		}
	}

	b.WriteString("\n## 약물 상호작용 근거 (허가정보 원문 기반)\n")
	if len(pc.Interactions) == 0 {
		b.WriteString("근거 없음\n")
	}
	for _, ir := range pc.Interactions {
		fmt.Fprintf(&b, "### %s (위험도: %s)\n", ir.MedicineName, ir.RiskLevel)
		for _, w := range ir.Warnings {
			fmt.Fprintf(&b, "- 경고: %s\n", w)
		}
		for _, p := range ir.Precautions {
			fmt.Fprintf(&b, "- 주의사항: %s\n", p)
		}
		for _, i := range ir.Interactions {
			fmt.Fprintf(&b, "- 상호작용: %s\n", i)
		}
		if len(ir.DetectedPatterns) > 0 {
			fmt.Fprintf(&b, "- 감지된 패턴: %s\n", strings.Join(sortedCategories(ir.DetectedPatterns), ", "))
		}
		if ir.SpecificFoodInteraction != nil {
			fmt.Fprintf(&b, "- 분석 대상 음식 직접 관련: %s 카테고리 (%s)\n",
				ir.SpecificFoodInteraction.Category, ir.SpecificFoodInteraction.Evidence)
		}
	}

	b.WriteString("\n## 질환별 식이 가이드라인 (근거)\n")
	for _, g := range pc.Guidelines {
		fmt.Fprintf(&b, "### %s\n", g.Disease)
		for _, r := range g.Recommendations {
			fmt.Fprintf(&b, "- 권장: %s\n", r)
		}
		for _, a := range g.Avoid {
			fmt.Fprintf(&b, "- 회피: %s\n", a)
		}
		if len(g.Citations) > 0 {
			fmt.Fprintf(&b, "- 출처: %s\n", strings.Join(g.Citations, ", "))
		}
	}

	b.WriteString("\n## 규칙 기반 사전 분석 결과\n")
	for _, pre := range pc.PreComputed {
		fmt.Fprintf(&b, "- %s: %s", pre.MedicineName, pre.RiskLevel)
		if len(pre.DetectedCategories) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(pre.DetectedCategories, ", "))
		}
		b.WriteString("\n")
	}

	if pc.GeneralInfo != nil {
		b.WriteString("\n## 일반 식품 정보 (근거)\n")
		fmt.Fprintf(&b, "이점: %s\n", pc.GeneralInfo.GeneralBenefit)
		fmt.Fprintf(&b, "유해 요인: %s\n", pc.GeneralInfo.GeneralHarm)
		fmt.Fprintf(&b, "영양 요약: %s\n", pc.GeneralInfo.NutritionSummary)
	}

	b.WriteString("\n위 근거만으로 분석하고, 근거가 부족한 항목은 insufficient_data로 표시하십시오.")
	return b.String()
}

// generalInfoSystemPrompt asks for the cacheable general pros/cons record.
const generalInfoSystemPrompt = `You are a nutritionist. Respond only with a JSON object:
{"general_benefit": "", "general_harm": "", "nutrition_summary": "", "cooking_tips": []}
Write the values in Korean. Keep each field under three sentences.`

func buildGeneralInfoPrompt(foodName string, nutrition *types.NutritionFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "음식 이름: %s\n", foodName)
	if nutrition != nil {
		fmt.Fprintf(&b, "영양 정보: 열량 %.0fkcal, 나트륨 %.0fmg, 탄수화물 %.1fg, 단백질 %.1fg, 지방 %.1fg\n",
			nutrition.Calories, nutrition.Sodium, nutrition.Carbohydrates, nutrition.Protein, nutrition.Fat)
	}
	b.WriteString("이 음식의 일반적인 이점, 유해 요인, 영양 요약, 조리 팁을 알려주세요.")
	return b.String()
}

// sortedCategories returns the detected pattern category names in stable
// order.
func sortedCategories(patterns map[string][]string) []string {
	categories := make([]string, 0, len(patterns))
	for c := range patterns {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
