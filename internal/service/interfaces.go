package service

import (
	"context"

	"github.com/mealsafe/backend/internal/types"
)

// ILLMService is the text-generation capability behind the orchestrator.
type ILLMService interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ClassifyFoodImage(ctx context.Context, imageDescription string) (string, error)
}

// IDataGateway defines the external public-data lookups.
type IDataGateway interface {
	LookupMedicine(ctx context.Context, keyword string) ([]types.MedicineFacts, error)
	LookupHealthFood(ctx context.Context, keyword string) ([]types.HealthFoodInfo, error)
	LookupRecipes(ctx context.Context, foodName string) ([]types.Recipe, error)
}

// IGeneralInfoCache is the smart cache of generated general food facts.
type IGeneralInfoCache interface {
	Get(ctx context.Context, foodName string) (*types.GeneralFoodInfo, error)
	Put(ctx context.Context, foodName string, info *types.GeneralFoodInfo) error
}

// IInteractionAnalyzer classifies drug-food interactions per medicine.
type IInteractionAnalyzer interface {
	AnalyzeMedicines(ctx context.Context, medicines []types.UserMedicine, foodName string) []types.MedicineInteractionResult
}

// IUserStore is the user/medicine store collaborator.
type IUserStore interface {
	GetUserMedicines(ctx context.Context, userID string) ([]types.UserMedicine, error)
	GetUserProfile(ctx context.Context, userID string) (*types.UserHealthProfile, error)
}

// IOrchestrator runs the full hybrid analysis.
type IOrchestrator interface {
	AnalyzeFood(ctx context.Context, req types.FoodSuitabilityRequest) *types.MedicalAnalysisOutput
}
