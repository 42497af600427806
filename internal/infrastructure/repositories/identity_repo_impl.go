package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/infrastructure/models"
)

// IdentityRepository implements the auth identity store
type IdentityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Create creates a new identity
func (r *IdentityRepository) Create(ctx context.Context, identity *entities.Identity) error {
	m := &models.Identity{
		ID:               identity.ID,
		Email:            identity.Email,
		Phone:            identity.Phone.Ptr(),
		PasswordHash:     identity.PasswordHash.Ptr(),
		EmailConfirmedAt: identity.EmailConfirmedAt.Ptr(),
		InvitedAt:        identity.InvitedAt.Ptr(),
		CreatedAt:        identity.CreatedAt,
		UpdatedAt:        identity.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	identity.CreatedAt = m.CreatedAt
	identity.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an identity by ID
func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Identity, error) {
	var m models.Identity
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toIdentityEntity(&m), nil
}

// GetByEmail gets an identity by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*entities.Identity, error) {
	var m models.Identity
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toIdentityEntity(&m), nil
}

// Update writes credentials and confirmation state
func (r *IdentityRepository) Update(ctx context.Context, identity *entities.Identity) error {
	updates := map[string]interface{}{
		"email":              identity.Email,
		"phone":              identity.Phone.Ptr(),
		"password_hash":      identity.PasswordHash.Ptr(),
		"email_confirmed_at": identity.EmailConfirmedAt.Ptr(),
		"invited_at":         identity.InvitedAt.Ptr(),
		"updated_at":         time.Now(),
	}
	result := GetDB(ctx, r.db).Model(&models.Identity{}).Where("id = ?", identity.ID).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an identity
func (r *IdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Identity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteUnconfirmed removes the identities among ids that never confirmed their email
func (r *IdentityRepository) DeleteUnconfirmed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).
		Where("id IN ? AND email_confirmed_at IS NULL", ids).
		Delete(&models.Identity{}).Error
}

func toIdentityEntity(m *models.Identity) *entities.Identity {
	return &entities.Identity{
		ID:               m.ID,
		Email:            m.Email,
		Phone:            null.StringFromPtr(m.Phone),
		PasswordHash:     null.StringFromPtr(m.PasswordHash),
		EmailConfirmedAt: null.TimeFromPtr(m.EmailConfirmedAt),
		InvitedAt:        null.TimeFromPtr(m.InvitedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
