package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/infrastructure/models"
)

// UserSettingsRepository implements user settings operations
type UserSettingsRepository struct {
	db *gorm.DB
}

// NewUserSettingsRepository creates a new user settings repository
func NewUserSettingsRepository(db *gorm.DB) *UserSettingsRepository {
	return &UserSettingsRepository{db: db}
}

// Create inserts settings for a user
func (r *UserSettingsRepository) Create(ctx context.Context, settings *entities.UserSettings) error {
	m := &models.UserSettings{ID: settings.ID, IsDarkMode: settings.IsDarkMode}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByUserID gets a user's settings
func (r *UserSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	var m models.UserSettings
	if err := GetDB(ctx, r.db).Where("id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &entities.UserSettings{ID: m.ID, IsDarkMode: m.IsDarkMode}, nil
}

// Update writes a user's settings
func (r *UserSettingsRepository) Update(ctx context.Context, settings *entities.UserSettings) error {
	result := GetDB(ctx, r.db).Model(&models.UserSettings{}).
		Where("id = ?", settings.ID).
		Update("is_dark_mode", settings.IsDarkMode)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a user's settings; a missing row is not an error
func (r *UserSettingsRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&models.UserSettings{}, "id = ?", userID).Error
}
