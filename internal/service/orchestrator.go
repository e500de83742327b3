package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mealsafe/backend/internal/types"
)

const citationRuleAnalysis = "규칙 기반 분석 (의약품 허가정보 주의사항)"

// levelScores backfills a final score when the LLM response omits one.
var levelScores = map[types.RiskLevel]int{
	types.RiskSafe:             90,
	types.RiskCaution:          70,
	types.RiskDanger:           40,
	types.RiskInsufficientData: 65,
}

// riskRecommendations are the fixed rule-pass recommendations per level.
var riskRecommendations = map[types.RiskLevel]string{
	types.RiskDanger:           "의사 또는 약사와 상담하기 전에는 이 음식을 함께 섭취하지 마십시오.",
	types.RiskCaution:          "섭취 간격을 충분히 두고 몸의 반응을 관찰하십시오.",
	types.RiskSafe:             "특별한 주의사항이 확인되지 않았습니다.",
	types.RiskInsufficientData: "상호작용 정보가 부족하므로 전문가와 상담하십시오.",
}

// MedicalAnalysisOrchestrator coordinates the hybrid rule+LLM analysis: it
// gathers cached and external evidence, runs the rule-based first pass,
// invokes the LLM with a grounded prompt, and deterministically merges both
// interaction lists. It never propagates an error to the caller; the worst
// case is the fixed insufficient-data output.
type MedicalAnalysisOrchestrator struct {
	cache    IGeneralInfoCache
	users    IUserStore
	gateway  IDataGateway
	analyzer IInteractionAnalyzer
	llm      ILLMService
}

// NewMedicalAnalysisOrchestrator creates a new orchestrator instance.
func NewMedicalAnalysisOrchestrator(
	cache IGeneralInfoCache,
	users IUserStore,
	gateway IDataGateway,
	analyzer IInteractionAnalyzer,
	llm ILLMService,
) *MedicalAnalysisOrchestrator {
	return &MedicalAnalysisOrchestrator{
		cache:    cache,
		users:    users,
		gateway:  gateway,
		analyzer: analyzer,
		llm:      llm,
	}
}

// AnalyzeFood runs one full analysis. Sub-step failures degrade to empty
// values; a failed or unparseable LLM analysis degrades to the fixed
// default output. The LLM call itself is not retried.
func (o *MedicalAnalysisOrchestrator) AnalyzeFood(ctx context.Context, req types.FoodSuitabilityRequest) *types.MedicalAnalysisOutput {
	output, err := o.analyze(ctx, req)
	if err != nil {
		log.Printf("[Orchestrator] analysis failed for %q, returning default output: %v", req.FoodName, err)
		return defaultAnalysisOutput(req)
	}
	return output
}

func (o *MedicalAnalysisOrchestrator) analyze(ctx context.Context, req types.FoodSuitabilityRequest) (*types.MedicalAnalysisOutput, error) {
	// Step 1: smart-cache check.
	generalInfo, err := o.cache.Get(ctx, req.FoodName)
	if err != nil {
		log.Printf("[Orchestrator] cache lookup failed for %q: %v", req.FoodName, err)
		generalInfo = nil
	}

	// Step 2: user context. Failures degrade to an empty medication list.
	medicines, err := o.users.GetUserMedicines(ctx, req.UserID)
	if err != nil {
		log.Printf("[Orchestrator] failed to load medicines for %q: %v", req.UserID, err)
		medicines = nil
	}
	profile, err := o.users.GetUserProfile(ctx, req.UserID)
	if err != nil {
		log.Printf("[Orchestrator] failed to load profile for %q: %v", req.UserID, err)
		profile = &types.UserHealthProfile{}
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}

	// Step 3: nutrition. Cached nutrition wins; otherwise extract from the
	// first recipe result.
	var nutrition *types.NutritionFacts
	var recipes []types.Recipe
	if generalInfo != nil && generalInfo.Nutrition != nil {
		copied := *generalInfo.Nutrition
		nutrition = &copied
	} else {
		recipes, _ = o.gateway.LookupRecipes(ctx, req.FoodName)
		if len(recipes) > 0 {
			nutrition = nutritionFromRecipe(req.FoodName, recipes[0])
		}
	}

	// Step 4: generate and persist general info on a cache miss. A failed
	// generation degrades to running without it.
	if generalInfo == nil {
		generalInfo = o.generateGeneralInfo(ctx, req.FoodName, nutrition)
		if generalInfo != nil {
			if err := o.cache.Put(ctx, req.FoodName, generalInfo); err != nil {
				log.Printf("[Orchestrator] failed to cache general info for %q: %v", req.FoodName, err)
			}
		}
	}

	// Step 5: per-medicine interaction analysis.
	interactions := o.analyzer.AnalyzeMedicines(ctx, medicines, req.FoodName)

	// Step 6: disease guidelines.
	guidelines := make([]types.DiseaseGuideline, 0, len(req.Diseases))
	for _, disease := range req.Diseases {
		guidelines = append(guidelines, GuidelineFor(disease))
	}

	// Step 7: rule-based first pass.
	preComputed := buildPreComputedInteractions(interactions)

	// Step 8: grounded prompt.
	prompt := buildMedicalPrompt(promptContext{
		Request:      req,
		Profile:      profile,
		Medicines:    medicines,
		Nutrition:    nutrition,
		Recipes:      recipes,
		Interactions: interactions,
		Guidelines:   guidelines,
		PreComputed:  preComputed,
		GeneralInfo:  generalInfo,
	})

	// Step 9: LLM analysis. Errors here are fatal for this path and turn
	// into the default output one level up.
	raw, err := o.llm.Generate(ctx, medicalSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("LLM analysis call failed: %w", err)
	}
	jsonText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("LLM response parsing failed: %w", err)
	}
	var parsed llmAnalysisResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("LLM response decoding failed: %w", err)
	}

	// Step 10: assemble and merge.
	output := o.assembleOutput(req, medicines, preComputed, parsed)
	return output, nil
}

// llmAnalysisResponse is the expected JSON shape of the analysis reply.
type llmAnalysisResponse struct {
	InteractionAssessment struct {
		Level            string   `json:"level"`
		EvidenceSummary  string   `json:"evidence_summary"`
		DetailedAnalysis string   `json:"detailed_analysis"`
		Mechanism        string   `json:"mechanism"`
		Citations        []string `json:"citations"`
	} `json:"interaction_assessment"`
	NutritionalRisk struct {
		RiskFactors []string `json:"risk_factors"`
		Description string   `json:"description"`
		Citations   []string `json:"citations"`
	} `json:"nutritional_risk"`
	DiseaseNotes []struct {
		Disease   string   `json:"disease"`
		Impact    string   `json:"impact"`
		Citations []string `json:"citations"`
	} `json:"disease_specific_notes"`
	DrugFoodInteractions []struct {
		MedicineName    string   `json:"medicine_name"`
		Warnings        []string `json:"warnings"`
		Recommendations []string `json:"recommendations"`
	} `json:"drug_food_interactions"`
	FinalScore *int `json:"final_score"`
}

func (o *MedicalAnalysisOrchestrator) assembleOutput(
	req types.FoodSuitabilityRequest,
	medicines []types.UserMedicine,
	preComputed []types.DrugFoodInteraction,
	parsed llmAnalysisResponse,
) *types.MedicalAnalysisOutput {
	level := types.RiskLevel(parsed.InteractionAssessment.Level)
	if !level.Valid() {
		level = types.RiskInsufficientData
	}

	score := levelScores[level]
	if parsed.FinalScore != nil {
		score = *parsed.FinalScore
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	medicineName := "N/A"
	if len(medicines) > 0 {
		medicineName = medicines[0].Name
	}

	output := &types.MedicalAnalysisOutput{
		FoodName:     req.FoodName,
		MedicineName: medicineName,
		Diseases:     req.Diseases,
		InteractionAssessment: types.InteractionAssessment{
			Level:            level,
			EvidenceSummary:  parsed.InteractionAssessment.EvidenceSummary,
			DetailedAnalysis: parsed.InteractionAssessment.DetailedAnalysis,
			Mechanism:        parsed.InteractionAssessment.Mechanism,
			Citations:        parsed.InteractionAssessment.Citations,
		},
		NutritionalRisk: types.NutritionalRisk{
			RiskFactors: parsed.NutritionalRisk.RiskFactors,
			Description: parsed.NutritionalRisk.Description,
			Citations:   parsed.NutritionalRisk.Citations,
		},
		FinalScore: score,
	}
	for _, note := range parsed.DiseaseNotes {
		output.DiseaseNotes = append(output.DiseaseNotes, types.DiseaseNote{
			Disease:   note.Disease,
			Impact:    note.Impact,
			Citations: note.Citations,
		})
	}

	output.DrugFoodInteractions = mergeInteractions(preComputed, parsed)
	return output
}

// mergeInteractions reconciles the rule pass with the LLM's interaction
// records. Join key is exact medicine name equality. Warnings and
// recommendations become the deduplicated union of both sides; risk level,
// detected categories and citation stay rule-derived. Rule records without
// an LLM counterpart are emitted unaugmented.
func mergeInteractions(rulePass []types.DrugFoodInteraction, parsed llmAnalysisResponse) []types.DrugFoodInteraction {
	llmByName := make(map[string]struct {
		Warnings        []string
		Recommendations []string
	}, len(parsed.DrugFoodInteractions))
	for _, li := range parsed.DrugFoodInteractions {
		llmByName[li.MedicineName] = struct {
			Warnings        []string
			Recommendations []string
		}{li.Warnings, li.Recommendations}
	}

	merged := make([]types.DrugFoodInteraction, 0, len(rulePass))
	for _, rule := range rulePass {
		entry := rule
		if llm, ok := llmByName[rule.MedicineName]; ok {
			entry.Warnings = unionStrings(rule.Warnings, llm.Warnings)
			entry.Recommendations = unionStrings(rule.Recommendations, llm.Recommendations)
		}
		merged = append(merged, entry)
	}
	return merged
}

// unionStrings appends b's elements to a, dropping duplicates and keeping
// first-seen order.
func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// buildPreComputedInteractions derives the rule-based interaction records
// from the analyzer results, without LLM involvement.
func buildPreComputedInteractions(interactions []types.MedicineInteractionResult) []types.DrugFoodInteraction {
	records := make([]types.DrugFoodInteraction, 0, len(interactions))
	for _, ir := range interactions {
		record := types.DrugFoodInteraction{
			MedicineName:       ir.MedicineName,
			RiskLevel:          ir.RiskLevel,
			DetectedCategories: sortedCategories(ir.DetectedPatterns),
			Warnings:           append([]string{}, ir.Warnings...),
			Recommendations:    []string{riskRecommendations[ir.RiskLevel]},
			Citation:           citationRuleAnalysis,
		}
		records = append(records, record)
	}
	return records
}

// generateGeneralInfo asks the LLM for the cacheable general facts record.
// Any failure degrades to nil.
func (o *MedicalAnalysisOrchestrator) generateGeneralInfo(ctx context.Context, foodName string, nutrition *types.NutritionFacts) *types.GeneralFoodInfo {
	raw, err := o.llm.Generate(ctx, generalInfoSystemPrompt, buildGeneralInfoPrompt(foodName, nutrition))
	if err != nil {
		log.Printf("[Orchestrator] general info generation failed for %q: %v", foodName, err)
		return nil
	}
	jsonText, err := ExtractJSONObject(raw)
	if err != nil {
		log.Printf("[Orchestrator] general info response parsing failed for %q: %v", foodName, err)
		return nil
	}

	var parsed struct {
		GeneralBenefit   string   `json:"general_benefit"`
		GeneralHarm      string   `json:"general_harm"`
		NutritionSummary string   `json:"nutrition_summary"`
		CookingTips      []string `json:"cooking_tips"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		log.Printf("[Orchestrator] general info decoding failed for %q: %v", foodName, err)
		return nil
	}

	return &types.GeneralFoodInfo{
		FoodName:         foodName,
		Nutrition:        nutrition,
		GeneralBenefit:   parsed.GeneralBenefit,
		GeneralHarm:      parsed.GeneralHarm,
		NutritionSummary: parsed.NutritionSummary,
		CookingTips:      parsed.CookingTips,
		CreatedAt:        time.Now(),
	}
}

// nutritionFromRecipe builds nutrition facts from the first recipe result.
func nutritionFromRecipe(foodName string, recipe types.Recipe) *types.NutritionFacts {
	return &types.NutritionFacts{
		FoodName:      foodName,
		Calories:      recipe.Calories,
		Sodium:        recipe.Sodium,
		Carbohydrates: recipe.Carbohydrates,
		Protein:       recipe.Protein,
		Fat:           recipe.Fat,
		Category:      recipe.Category,
		CookingMethod: recipe.CookingMethod,
		Citations:     []string{"식품안전나라 조리식품 레시피 DB"},
	}
}

// defaultAnalysisOutput is the degraded-but-valid answer returned when the
// analysis pipeline fails.
func defaultAnalysisOutput(req types.FoodSuitabilityRequest) *types.MedicalAnalysisOutput {
	return &types.MedicalAnalysisOutput{
		FoodName:     req.FoodName,
		MedicineName: "N/A",
		Diseases:     req.Diseases,
		InteractionAssessment: types.InteractionAssessment{
			Level:           types.RiskInsufficientData,
			EvidenceSummary: "분석에 필요한 정보를 가져오지 못했습니다. 잠시 후 다시 시도해 주세요.",
			DetailedAnalysis: "외부 데이터 또는 분석 서비스 오류로 상세 분석을 완료하지 못했습니다. " +
				"정확한 판단이 필요하면 의사 또는 약사와 상담하십시오.",
		},
		NutritionalRisk: types.NutritionalRisk{
			Description: "영양 정보를 확인하지 못했습니다.",
		},
		FinalScore: levelScores[types.RiskInsufficientData],
	}
}
