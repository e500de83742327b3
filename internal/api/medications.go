package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsafe/backend/internal/service"
	"github.com/mealsafe/backend/internal/types"
)

// MedicationHandler handles the user medication list
type MedicationHandler struct {
	users *service.UserStore
}

// NewMedicationHandler creates a new MedicationHandler instance
func NewMedicationHandler(users *service.UserStore) *MedicationHandler {
	return &MedicationHandler{users: users}
}

// List returns the user's active medications in registration order.
func (h *MedicationHandler) List(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	medicines, err := h.users.GetUserMedicines(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load medications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medications": medicines})
}

// Add registers a new active medication for the user.
func (h *MedicationHandler) Add(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required"`
		Dosage    string `json:"dosage"`
		Frequency string `json:"frequency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.users.AddUserMedicine(c.Request.Context(), userID, types.UserMedicine{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add medication"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"medication": row})
}
