package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealsafe/backend/internal/models"
	"github.com/mealsafe/backend/internal/service"
	"github.com/mealsafe/backend/internal/types"
)

// AnalysisHandler handles food suitability analysis requests
type AnalysisHandler struct {
	db           *gorm.DB
	orchestrator service.IOrchestrator
	score        *service.ScoreCalculator
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(db *gorm.DB, orchestrator service.IOrchestrator) *AnalysisHandler {
	return &AnalysisHandler{
		db:           db,
		orchestrator: orchestrator,
		score:        service.NewScoreCalculator(service.NewRuleEngine()),
	}
}

// AnalyzeFood handles the full medical analysis request. The orchestrator
// never fails outright, so any error here is a request problem.
func (h *AnalysisHandler) AnalyzeFood(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req types.FoodSuitabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = userID

	output := h.orchestrator.AnalyzeFood(c.Request.Context(), req)
	summary := service.BuildUserSummary(output)

	h.saveRecord(c, userID, req, output, summary)

	c.JSON(http.StatusOK, gin.H{
		"analysis": output,
		"summary":  summary,
	})
}

// saveRecord persists the analysis for the history endpoint. Persistence
// failures are logged and do not affect the response.
func (h *AnalysisHandler) saveRecord(c *gin.Context, userID string, req types.FoodSuitabilityRequest, output *types.MedicalAnalysisOutput, summary string) {
	resultJSON, err := json.Marshal(output)
	if err != nil {
		log.Printf("[AnalysisHandler] failed to marshal analysis result: %v", err)
		return
	}

	diseases, err := json.Marshal(req.Diseases)
	if err != nil {
		log.Printf("[AnalysisHandler] failed to marshal diseases: %v", err)
		return
	}

	record := models.FoodAnalysisRecord{
		UserID:     userID,
		FoodName:   req.FoodName,
		Diseases:   string(diseases),
		FinalScore: output.FinalScore,
		RiskLevel:  string(output.InteractionAssessment.Level),
		ResultJSON: string(resultJSON),
		Summary:    summary,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		log.Printf("[AnalysisHandler] failed to save analysis record: %v", err)
	}
}

// quickScoreRequest is the rule-only scoring request body.
type quickScoreRequest struct {
	FoodName  string                `json:"food_name" binding:"required"`
	Diseases  []string              `json:"diseases" binding:"required,min=1,max=3"`
	Nutrition *types.NutritionFacts `json:"nutrition"`
}

// QuickScore runs the rule engine alone, with no network calls. It backs the
// instant preview shown while the full analysis is in flight.
func (h *AnalysisHandler) QuickScore(c *gin.Context) {
	var req quickScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := h.score.CalculateScore(req.FoodName, req.Diseases, req.Nutrition)
	c.JSON(http.StatusOK, gin.H{
		"food_name":      req.FoodName,
		"score":          score,
		"grade":          h.score.GetGrade(score),
		"recommendation": h.score.GetRecommendationLevel(score),
	})
}

// History returns the user's analyses from the last 30 days, newest first.
func (h *AnalysisHandler) History(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	cutoff := time.Now().Add(-models.AnalysisRecordTTL)
	var records []models.FoodAnalysisRecord
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis history"})
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, r := range records {
		items = append(items, gin.H{
			"id":          r.ID,
			"food_name":   r.FoodName,
			"final_score": r.FinalScore,
			"risk_level":  r.RiskLevel,
			"summary":     r.Summary,
			"created_at":  r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": items})
}
