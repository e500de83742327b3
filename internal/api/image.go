package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsafe/backend/internal/service"
)

// ImageHandler classifies a food photo into a dish name
type ImageHandler struct {
	llm service.ILLMService
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(llm service.ILLMService) *ImageHandler {
	return &ImageHandler{llm: llm}
}

// Classify names the dish on a photo from its caption or OCR text.
func (h *ImageHandler) Classify(c *gin.Context) {
	var req struct {
		ImageDescription string `json:"image_description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foodName, err := h.llm.ClassifyFoodImage(c.Request.Context(), req.ImageDescription)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to classify food image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_name": foodName})
}
