package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the demographic context used for analysis prompting.
type UserProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	Age       *int           `json:"age,omitempty"`
	Gender    string         `gorm:"size:16" json:"gender,omitempty"`
	Diseases  string         `gorm:"size:255" json:"diseases,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserMedicine is one active medication registered by a user.
type UserMedicine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"size:64;not null;index" json:"user_id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Dosage    string         `gorm:"size:60" json:"dosage,omitempty"`
	Frequency string         `gorm:"size:60" json:"frequency,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserMedicine) TableName() string {
	return "user_medicines"
}

func (m *UserMedicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
