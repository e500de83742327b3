package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisRecordTTL is how long persisted analyses stay readable before the
// history endpoint treats them as expired.
const AnalysisRecordTTL = 30 * 24 * time.Hour

// FoodAnalysisRecord persists one orchestrated analysis result alongside the
// originating request.
type FoodAnalysisRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;not null;index" json:"user_id"`
	FoodName   string    `gorm:"size:200;not null" json:"food_name"`
	Diseases   string    `gorm:"size:255" json:"diseases"`
	FinalScore int       `gorm:"not null" json:"final_score"`
	RiskLevel  string    `gorm:"size:32;not null" json:"risk_level"`
	ResultJSON string    `gorm:"type:text" json:"result_json"`
	Summary    string    `gorm:"type:text" json:"summary"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (FoodAnalysisRecord) TableName() string {
	return "food_analysis_records"
}

func (r *FoodAnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
