package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsafe/backend/internal/service"
)

// FoodDataHandler exposes the public food data lookups
type FoodDataHandler struct {
	gateway service.IDataGateway
}

// NewFoodDataHandler creates a new FoodDataHandler instance
func NewFoodDataHandler(gateway service.IDataGateway) *FoodDataHandler {
	return &FoodDataHandler{gateway: gateway}
}

// Recipes returns recipe records matching the food name.
func (h *FoodDataHandler) Recipes(c *gin.Context) {
	foodName := c.Query("food_name")
	if foodName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_name query parameter is required"})
		return
	}

	recipes, err := h.gateway.LookupRecipes(c.Request.Context(), foodName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// HealthFoods returns health functional food records for a keyword.
func (h *FoodDataHandler) HealthFoods(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword query parameter is required"})
		return
	}

	foods, err := h.gateway.LookupHealthFood(c.Request.Context(), keyword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up health foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"health_foods": foods})
}
