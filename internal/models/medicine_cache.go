package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicineCache stores previously fetched (or synthesized) medicine facts
// keyed by the lookup keyword so repeated lookups skip the metered APIs.
type MedicineCache struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Keyword       string    `gorm:"size:120;not null;index" json:"keyword"`
	ItemName      string    `gorm:"size:200" json:"item_name"`
	Manufacturer  string    `gorm:"size:200" json:"manufacturer"`
	Efficacy      string    `gorm:"type:text" json:"efficacy"`
	Warning       string    `gorm:"type:text" json:"warning"`
	Precaution    string    `gorm:"type:text" json:"precaution"`
	Interaction   string    `gorm:"type:text" json:"interaction"`
	SideEffect    string    `gorm:"type:text" json:"side_effect"`
	StorageMethod string    `gorm:"type:text" json:"storage_method"`
	Synthetic     bool      `gorm:"default:false" json:"synthetic"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (MedicineCache) TableName() string {
	return "medicine_cache"
}

func (m *MedicineCache) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
