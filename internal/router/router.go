package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsafe/backend/internal/api"
	"github.com/mealsafe/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	analysisHandler *api.AnalysisHandler,
	medicationHandler *api.MedicationHandler,
	imageHandler *api.ImageHandler,
	foodDataHandler *api.FoodDataHandler,
	analysisLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	analysis := v1.Group("/analysis")
	{
		// The full analysis fans out to the LLM and public APIs, so it is
		// rate limited per user. The rule-only score path is free.
		analysis.POST("/food", analysisLimiter.RateLimitMiddleware(), analysisHandler.AnalyzeFood)
		analysis.POST("/score", analysisHandler.QuickScore)
		analysis.GET("/history", analysisHandler.History)
		analysis.GET("/limit", analysisLimiter.StatusHandler())
		analysis.POST("/image", analysisLimiter.RateLimitMiddleware(), imageHandler.Classify)
	}

	medications := v1.Group("/medications")
	{
		medications.GET("", medicationHandler.List)
		medications.POST("", medicationHandler.Add)
	}

	foods := v1.Group("/foods")
	{
		foods.GET("/recipes", foodDataHandler.Recipes)
		foods.GET("/health-foods", foodDataHandler.HealthFoods)
	}

	return router
}
