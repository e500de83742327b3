package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mealsafe/backend/internal/models"
)

// Migrate applies the schema for every model the API persists.
func Migrate(db *gorm.DB) error {
	log.Printf("[Database] running migrations")
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.UserMedicine{},
		&models.MedicineCache{},
		&models.FoodAnalysisRecord{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
