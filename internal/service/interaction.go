package service

import (
	"context"
	"log"
	"strings"

	"github.com/mealsafe/backend/internal/types"
)

// Interaction keyword categories. The category names are stable output
// values; tests and the prompt builder rely on them.
const (
	categoryAlcohol       = "alcohol"
	categoryTiming        = "timing"
	categoryDairy         = "dairy"
	categoryCaffeine      = "caffeine"
	categoryCitrus        = "citrus"
	categoryVegetables    = "vegetables"
	categoryHighSodium    = "high_sodium"
	categoryHighPotassium = "high_potassium"
	categoryHighFat       = "high_fat"
	categoryOther         = "other"
)

// interactionCategories maps each category to the keywords searched for in
// the concatenated lowercase precaution text. Korean keywords first since
// the public drug APIs return Korean text; English equivalents cover
// synthesized records.
var interactionCategories = map[string][]string{
	categoryAlcohol:       {"술", "음주", "알코올", "맥주", "소주", "alcohol"},
	categoryTiming:        {"식전", "식후", "공복", "취침 전", "before meals", "after meals", "empty stomach"},
	categoryDairy:         {"우유", "유제품", "치즈", "요구르트", "칼슘", "milk", "dairy"},
	categoryCaffeine:      {"커피", "카페인", "녹차", "홍차", "에너지음료", "caffeine", "coffee"},
	categoryCitrus:        {"자몽", "오렌지", "귤", "감귤", "레몬", "grapefruit", "citrus"},
	categoryVegetables:    {"녹색 채소", "시금치", "케일", "브로콜리", "비타민k", "leafy green", "vitamin k"},
	categoryHighSodium:    {"나트륨", "염분", "짠 음식", "소금", "sodium", "salt"},
	categoryHighPotassium: {"칼륨", "바나나", "포타슘", "potassium"},
	categoryHighFat:       {"고지방", "기름진", "지방이 많은", "튀긴", "high-fat", "fatty"},
	categoryOther:         {"상호작용", "병용", "함께 복용", "같이 섭취", "interaction"},
}

// criticalKeywords promote the risk level to danger when they appear in a
// medicine's warning or precaution text.
var criticalKeywords = []string{
	"금기", "즉시", "중단", "위험", "심각", "응급", "반드시",
	"contraindicated", "immediately", "discontinue", "dangerous", "severe", "emergency", "must",
}

// cautionKeywords mark a caution-level interaction on their own.
var cautionKeywords = []string{
	"주의", "삼가", "피하", "제한", "조절",
	"caution", "avoid", "limit",
}

// foodCategoryKeywords maps food-name substrings to the interaction category
// the food belongs to, used to extract the specific food match. Ordered so
// repeated runs pick the same match.
var foodCategoryKeywords = []struct {
	Keyword  string
	Category string
}{
	{"맥주", categoryAlcohol}, {"소주", categoryAlcohol}, {"와인", categoryAlcohol}, {"막걸리", categoryAlcohol},
	{"우유", categoryDairy}, {"치즈", categoryDairy}, {"요거트", categoryDairy}, {"요구르트", categoryDairy},
	{"커피", categoryCaffeine}, {"라떼", categoryCaffeine}, {"녹차", categoryCaffeine}, {"홍차", categoryCaffeine},
	{"자몽", categoryCitrus}, {"오렌지", categoryCitrus}, {"귤", categoryCitrus}, {"레몬", categoryCitrus},
	{"시금치", categoryVegetables}, {"케일", categoryVegetables}, {"브로콜리", categoryVegetables},
	{"라면", categoryHighSodium}, {"젓갈", categoryHighSodium}, {"찌개", categoryHighSodium}, {"짬뽕", categoryHighSodium},
	{"바나나", categoryHighPotassium},
	{"치킨", categoryHighFat}, {"튀김", categoryHighFat}, {"삼겹살", categoryHighFat}, {"피자", categoryHighFat},
}

const citationDrugLabel = "의약품 허가정보 주의사항"

// medicineFactsSource is the slice of the external gateway the analyzer
// needs: medicine facts lookup only.
type medicineFactsSource interface {
	LookupMedicine(ctx context.Context, keyword string) ([]types.MedicineFacts, error)
}

// InteractionAnalyzer classifies drug-food interaction risk per medicine.
// Each medicine's analysis is independent; the result order follows the
// input medicine order.
type InteractionAnalyzer struct {
	source medicineFactsSource
}

// NewInteractionAnalyzer creates a new InteractionAnalyzer instance.
func NewInteractionAnalyzer(source medicineFactsSource) *InteractionAnalyzer {
	return &InteractionAnalyzer{source: source}
}

// AnalyzeMedicines fetches facts for every medicine and classifies its
// interaction risk against the target food. Lookup failures degrade to an
// insufficient_data result for that medicine.
func (a *InteractionAnalyzer) AnalyzeMedicines(ctx context.Context, medicines []types.UserMedicine, foodName string) []types.MedicineInteractionResult {
	results := make([]types.MedicineInteractionResult, 0, len(medicines))
	for _, med := range medicines {
		facts, err := a.source.LookupMedicine(ctx, med.Name)
		if err != nil {
			log.Printf("[InteractionAnalyzer] medicine lookup failed for %q: %v", med.Name, err)
			facts = nil
		}
		results = append(results, ClassifyInteraction(med.Name, facts, foodName))
	}
	return results
}

// ClassifyInteraction pattern-matches one medicine's precaution text against
// the food-category keyword sets. An empty facts list always yields
// insufficient_data, never safe.
func ClassifyInteraction(medicineName string, facts []types.MedicineFacts, foodName string) types.MedicineInteractionResult {
	result := types.MedicineInteractionResult{
		MedicineName: medicineName,
		RiskLevel:    types.RiskInsufficientData,
	}
	if len(facts) == 0 {
		return result
	}

	var warnings, precautions, interactions, sideEffects []string
	for _, f := range facts {
		if f.Warning != "" {
			warnings = append(warnings, f.Warning)
		}
		if f.Precaution != "" {
			precautions = append(precautions, f.Precaution)
		}
		if f.Interaction != "" {
			interactions = append(interactions, f.Interaction)
		}
		if f.SideEffect != "" {
			sideEffects = append(sideEffects, f.SideEffect)
		}
	}
	result.Warnings = warnings
	result.Precautions = precautions
	result.Interactions = interactions
	result.SideEffects = sideEffects
	result.Citations = []string{citationDrugLabel}

	fullText := strings.ToLower(strings.Join(append(append(append([]string{}, warnings...), precautions...), interactions...), " "))
	alertText := strings.ToLower(strings.Join(append(append([]string{}, warnings...), precautions...), " "))

	detected := map[string][]string{}
	for category, keywords := range interactionCategories {
		for _, kw := range keywords {
			if strings.Contains(fullText, strings.ToLower(kw)) {
				detected[category] = append(detected[category], kw)
			}
		}
	}
	if len(detected) > 0 {
		result.DetectedPatterns = detected
		result.HasInteraction = true
	}

	if category, keyword, ok := matchFoodCategory(foodName); ok {
		if matches, hit := detected[category]; hit {
			result.SpecificFoodInteraction = &types.FoodInteractionMatch{
				Category: category,
				Keyword:  keyword,
				Evidence: strings.Join(matches, ", "),
			}
		}
	}

	switch {
	case containsAny(alertText, criticalKeywords):
		result.RiskLevel = types.RiskDanger
	case containsAny(fullText, cautionKeywords) || len(detected) > 0:
		result.RiskLevel = types.RiskCaution
	default:
		result.RiskLevel = types.RiskSafe
	}
	return result
}

// matchFoodCategory maps a food name to its interaction category via
// substring containment.
func matchFoodCategory(foodName string) (category, keyword string, ok bool) {
	for _, entry := range foodCategoryKeywords {
		if strings.Contains(foodName, entry.Keyword) {
			return entry.Category, entry.Keyword, true
		}
	}
	return "", "", false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
