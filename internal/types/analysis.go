package types

import "time"

// RiskLevel is the coarse-grained classification of a drug-food interaction.
type RiskLevel string

const (
	RiskSafe             RiskLevel = "safe"
	RiskCaution          RiskLevel = "caution"
	RiskDanger           RiskLevel = "danger"
	RiskInsufficientData RiskLevel = "insufficient_data"
)

// Valid reports whether l is one of the four enumerated risk levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskSafe, RiskCaution, RiskDanger, RiskInsufficientData:
		return true
	}
	return false
}

// FoodSuitabilityRequest is the input of a food analysis. Diseases are kept
// in request order for display; ordering does not affect scoring.
type FoodSuitabilityRequest struct {
	FoodName string   `json:"food_name" binding:"required"`
	Diseases []string `json:"diseases" binding:"required,min=1,max=3"`
	UserID   string   `json:"user_id"`
	Age      *int     `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
}

// NutritionFacts is an immutable value object describing one food.
// Whichever component fetches it first owns construction; everyone else
// receives a copy.
type NutritionFacts struct {
	FoodName      string   `json:"food_name"`
	Calories      float64  `json:"calories"`
	Sodium        float64  `json:"sodium"`
	Carbohydrates float64  `json:"carbohydrates"`
	Protein       float64  `json:"protein"`
	Fat           float64  `json:"fat"`
	Category      string   `json:"category,omitempty"`
	CookingMethod string   `json:"cooking_method,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
	Citations     []string `json:"citations,omitempty"`
}

// GeneralFoodInfo is the smart-cache entry for one food name. FoodName is
// the sole cache identity and is assumed normalized by the boundary layer.
type GeneralFoodInfo struct {
	FoodName         string          `json:"food_name"`
	Nutrition        *NutritionFacts `json:"nutrition,omitempty"`
	GeneralBenefit   string          `json:"general_benefit"`
	GeneralHarm      string          `json:"general_harm"`
	NutritionSummary string          `json:"nutrition_summary"`
	CookingTips      []string        `json:"cooking_tips,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MedicineFacts holds the raw text fields of one medicine record as returned
// by the public drug APIs (or synthesized when those are unavailable).
type MedicineFacts struct {
	ItemName      string `json:"item_name"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Efficacy      string `json:"efficacy,omitempty"`
	Warning       string `json:"warning,omitempty"`
	Precaution    string `json:"precaution,omitempty"`
	Interaction   string `json:"interaction,omitempty"`
	SideEffect    string `json:"side_effect,omitempty"`
	StorageMethod string `json:"storage_method,omitempty"`
	Synthetic     bool   `json:"synthetic,omitempty"`
}

// FoodInteractionMatch records the specific keyword evidence that tied the
// analyzed food to a medicine's precaution text.
type FoodInteractionMatch struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
	Evidence string `json:"evidence"`
}

// MedicineInteractionResult is the per-(medicine, food) classification
// produced by the interaction analyzer. Created fresh on every analysis.
type MedicineInteractionResult struct {
	MedicineName            string                `json:"medicine_name"`
	RiskLevel               RiskLevel             `json:"risk_level"`
	HasInteraction          bool                  `json:"has_interaction"`
	DetectedPatterns        map[string][]string   `json:"detected_patterns,omitempty"`
	SpecificFoodInteraction *FoodInteractionMatch `json:"specific_food_interaction,omitempty"`
	Warnings                []string              `json:"warnings,omitempty"`
	Precautions             []string              `json:"precautions,omitempty"`
	Interactions            []string              `json:"interactions,omitempty"`
	SideEffects             []string              `json:"side_effects,omitempty"`
	Citations               []string              `json:"citations,omitempty"`
}

// DiseaseGuideline is a static dietary guideline for one disease.
type DiseaseGuideline struct {
	Disease         string   `json:"disease"`
	Recommendations []string `json:"recommendations"`
	Avoid           []string `json:"avoid"`
	Citations       []string `json:"citations"`
}

// InteractionAssessment is the LLM's overall judgement of the analyzed food.
type InteractionAssessment struct {
	Level            RiskLevel `json:"level"`
	EvidenceSummary  string    `json:"evidence_summary"`
	DetailedAnalysis string    `json:"detailed_analysis"`
	Mechanism        string    `json:"mechanism,omitempty"`
	Citations        []string  `json:"citations,omitempty"`
}

// NutritionalRisk describes the nutrition-driven concerns for the user.
type NutritionalRisk struct {
	RiskFactors []string `json:"risk_factors,omitempty"`
	Description string   `json:"description"`
	Citations   []string `json:"citations,omitempty"`
}

// DiseaseNote is a per-disease impact note in the final output.
type DiseaseNote struct {
	Disease   string   `json:"disease"`
	Impact    string   `json:"impact"`
	Citations []string `json:"citations,omitempty"`
}

// DrugFoodInteraction is one merged rule+LLM interaction record. The risk
// level, detected categories and citation always come from the rule pass;
// the LLM only contributes additional warnings and recommendations.
type DrugFoodInteraction struct {
	MedicineName       string    `json:"medicine_name"`
	RiskLevel          RiskLevel `json:"risk_level"`
	DetectedCategories []string  `json:"detected_categories,omitempty"`
	Warnings           []string  `json:"warnings,omitempty"`
	Recommendations    []string  `json:"recommendations,omitempty"`
	Citation           string    `json:"citation"`
}

// MedicalAnalysisOutput is the single result of one orchestrated analysis.
type MedicalAnalysisOutput struct {
	FoodName              string                `json:"food_name"`
	MedicineName          string                `json:"medicine_name"`
	Diseases              []string              `json:"diseases"`
	InteractionAssessment InteractionAssessment `json:"interaction_assessment"`
	NutritionalRisk       NutritionalRisk       `json:"nutritional_risk"`
	DiseaseNotes          []DiseaseNote         `json:"disease_specific_notes,omitempty"`
	DrugFoodInteractions  []DrugFoodInteraction `json:"drug_food_interactions,omitempty"`
	FinalScore            int                   `json:"final_score"`
}

// UserMedicine is the user-medicine-store view of one active medication.
type UserMedicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// UserHealthProfile is the optional demographic context for prompting.
type UserHealthProfile struct {
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Recipe is one normalized record from the public recipe/nutrition API.
type Recipe struct {
	Name          string  `json:"name"`
	CookingMethod string  `json:"cooking_method,omitempty"`
	Category      string  `json:"category,omitempty"`
	Calories      float64 `json:"calories"`
	Sodium        float64 `json:"sodium"`
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Hashtag       string  `json:"hashtag,omitempty"`
	Ingredients   string  `json:"ingredients,omitempty"`
}

// HealthFoodInfo is one health-functional-food record.
type HealthFoodInfo struct {
	ProductName   string `json:"product_name"`
	Company       string `json:"company,omitempty"`
	Functionality string `json:"functionality,omitempty"`
	IntakeMethod  string `json:"intake_method,omitempty"`
	Precaution    string `json:"precaution,omitempty"`
	Synthetic     bool   `json:"synthetic,omitempty"`
}
