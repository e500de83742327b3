package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mealsafe/backend/config"
	"github.com/mealsafe/backend/internal/api"
	"github.com/mealsafe/backend/internal/database"
	"github.com/mealsafe/backend/internal/middleware"
	"github.com/mealsafe/backend/internal/router"
	"github.com/mealsafe/backend/internal/server"
	"github.com/mealsafe/backend/internal/service"
)

func main() {
	// Load .env if present; real deployments use the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	quota := service.NewQuotaGate(redisClient, map[string]int{
		service.QuotaCategoryDrug:       cfg.DrugAPIDailyLimit,
		service.QuotaCategoryRecipe:     cfg.RecipeAPIDailyLimit,
		service.QuotaCategoryHealthFood: cfg.HealthFoodAPIDailyLimit,
	}, cfg.QuotaLocation())

	gateway := service.NewExternalDataGateway(db, quota, cfg.DrugAPIKey, cfg.RecipeAPIKey)
	analyzer := service.NewInteractionAnalyzer(gateway)

	generalInfoCache, err := service.NewGeneralInfoCache(redisClient, cfg.GeneralInfoTTL)
	if err != nil {
		log.Fatalf("Failed to create general info cache: %v", err)
	}

	llmService, err := service.NewLLMService()
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	users := service.NewUserStore(db)
	orchestrator := service.NewMedicalAnalysisOrchestrator(generalInfoCache, users, gateway, analyzer, llmService)

	analysisHandler := api.NewAnalysisHandler(db, orchestrator)
	medicationHandler := api.NewMedicationHandler(users)
	imageHandler := api.NewImageHandler(llmService)
	foodDataHandler := api.NewFoodDataHandler(gateway)
	analysisLimiter := middleware.NewAnalysisRateLimiter(redisClient)

	engine := router.SetupRouter(analysisHandler, medicationHandler, imageHandler, foodDataHandler, analysisLimiter)

	srv := server.NewServer(engine)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
