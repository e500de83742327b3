package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mealsafe/backend/internal/types"
)

// MockLLMService is a mock implementation of the ILLMService interface
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLMService) ClassifyFoodImage(ctx context.Context, imageDescription string) (string, error) {
	args := m.Called(ctx, imageDescription)
	return args.String(0), args.Error(1)
}

// MockDataGateway is a mock implementation of the IDataGateway interface
type MockDataGateway struct {
	mock.Mock
}

func (m *MockDataGateway) LookupMedicine(ctx context.Context, keyword string) ([]types.MedicineFacts, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.MedicineFacts), args.Error(1)
}

func (m *MockDataGateway) LookupHealthFood(ctx context.Context, keyword string) ([]types.HealthFoodInfo, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.HealthFoodInfo), args.Error(1)
}

func (m *MockDataGateway) LookupRecipes(ctx context.Context, foodName string) ([]types.Recipe, error) {
	args := m.Called(ctx, foodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// MockGeneralInfoCache is a mock implementation of the IGeneralInfoCache interface
type MockGeneralInfoCache struct {
	mock.Mock
}

func (m *MockGeneralInfoCache) Get(ctx context.Context, foodName string) (*types.GeneralFoodInfo, error) {
	args := m.Called(ctx, foodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneralFoodInfo), args.Error(1)
}

func (m *MockGeneralInfoCache) Put(ctx context.Context, foodName string, info *types.GeneralFoodInfo) error {
	args := m.Called(ctx, foodName, info)
	return args.Error(0)
}

// MockUserStore is a mock implementation of the IUserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserMedicines(ctx context.Context, userID string) ([]types.UserMedicine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.UserMedicine), args.Error(1)
}

func (m *MockUserStore) GetUserProfile(ctx context.Context, userID string) (*types.UserHealthProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserHealthProfile), args.Error(1)
}

// MockInteractionAnalyzer is a mock implementation of the IInteractionAnalyzer interface
type MockInteractionAnalyzer struct {
	mock.Mock
}

func (m *MockInteractionAnalyzer) AnalyzeMedicines(ctx context.Context, medicines []types.UserMedicine, foodName string) []types.MedicineInteractionResult {
	args := m.Called(ctx, medicines, foodName)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.MedicineInteractionResult)
}

// MockOrchestrator is a mock implementation of the IOrchestrator interface
type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) AnalyzeFood(ctx context.Context, req types.FoodSuitabilityRequest) *types.MedicalAnalysisOutput {
	args := m.Called(ctx, req)
	return args.Get(0).(*types.MedicalAnalysisOutput)
}
