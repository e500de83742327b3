package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mealsafe/backend/internal/models"
	"github.com/mealsafe/backend/internal/types"
)

// UserStore reads user medications and profiles from the database.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// GetUserMedicines returns the user's active medications in creation order.
func (s *UserStore) GetUserMedicines(ctx context.Context, userID string) ([]types.UserMedicine, error) {
	var rows []models.UserMedicine
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load user medicines: %w", err)
	}

	medicines := make([]types.UserMedicine, 0, len(rows))
	for _, row := range rows {
		medicines = append(medicines, types.UserMedicine{
			Name:      row.Name,
			Dosage:    row.Dosage,
			Frequency: row.Frequency,
		})
	}
	return medicines, nil
}

// GetUserProfile returns the user's demographic profile, or an empty profile
// when none is registered.
func (s *UserStore) GetUserProfile(ctx context.Context, userID string) (*types.UserHealthProfile, error) {
	var row models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &types.UserHealthProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	return &types.UserHealthProfile{Age: row.Age, Gender: row.Gender}, nil
}

// AddUserMedicine registers a new active medication for the user.
func (s *UserStore) AddUserMedicine(ctx context.Context, userID string, med types.UserMedicine) (*models.UserMedicine, error) {
	row := models.UserMedicine{
		UserID:    userID,
		Name:      med.Name,
		Dosage:    med.Dosage,
		Frequency: med.Frequency,
		Active:    true,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to add user medicine: %w", err)
	}
	return &row, nil
}
