package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := toUserModel(user)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// GetCompleteByID gets a user with its geopoint
func (r *UserRepository) GetCompleteByID(ctx context.Context, id uuid.UUID) (*entities.CompleteUser, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Preload("Geopoint").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toCompleteUser(&m), nil
}

// GetCompleteByIDs gets users with geopoints ordered by last name
func (r *UserRepository) GetCompleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.CompleteUser, error) {
	if len(ids) == 0 {
		return []*entities.CompleteUser{}, nil
	}
	var ms []models.User
	if err := GetDB(ctx, r.db).Preload("Geopoint").
		Where("id IN ?", ids).
		Order("last_name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toCompleteUsers(ms), nil
}

// ListByRole lists one window of users of a role
func (r *UserRepository) ListByRole(ctx context.Context, role entities.UserRole, excludeID uuid.UUID, offset, limit int) ([]*entities.CompleteUser, error) {
	var ms []models.User
	if err := GetDB(ctx, r.db).Preload("Geopoint").
		Where("role = ? AND id <> ?", string(role), excludeID).
		Order("last_name ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toCompleteUsers(ms), nil
}

// ListAllExcept lists every user except one
func (r *UserRepository) ListAllExcept(ctx context.Context, excludeID uuid.UUID) ([]*entities.CompleteUser, error) {
	var ms []models.User
	if err := GetDB(ctx, r.db).Preload("Geopoint").
		Where("id <> ?", excludeID).
		Order("last_name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toCompleteUsers(ms), nil
}

// ListAllByRole lists every user of a role without geopoints
func (r *UserRepository) ListAllByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	var ms []models.User
	if err := GetDB(ctx, r.db).
		Where("role = ?", string(role)).
		Order("last_name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, toUserEntity(&ms[i]))
	}
	return users, nil
}

// ContactTaken reports whether the email or phone belongs to a different user
func (r *UserRepository) ContactTaken(ctx context.Context, email, phone string, exceptID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.User{}).
		Where("(email = ? OR phone_number = ?) AND id <> ?", email, phone, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates the mutable profile fields of a user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"first_name":   user.FirstName,
		"middle_name":  user.MiddleName.Ptr(),
		"last_name":    user.LastName,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"geopoint_id":  user.GeopointID,
	}

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetActive toggles a user's active flag
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a user row
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserModel(user *entities.User) *models.User {
	return &models.User{
		ID:          user.ID,
		FirstName:   user.FirstName,
		MiddleName:  user.MiddleName.Ptr(),
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		GeopointID:  user.GeopointID,
	}
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:          m.ID,
		FirstName:   m.FirstName,
		MiddleName:  null.StringFromPtr(m.MiddleName),
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Role:        entities.UserRole(m.Role),
		IsActive:    m.IsActive,
		GeopointID:  m.GeopointID,
	}
}

func toCompleteUser(m *models.User) *entities.CompleteUser {
	cu := &entities.CompleteUser{User: *toUserEntity(m)}
	if m.Geopoint != nil {
		cu.Geopoint = toGeopointEntity(m.Geopoint)
	}
	return cu
}

func toCompleteUsers(ms []models.User) []*entities.CompleteUser {
	out := make([]*entities.CompleteUser, 0, len(ms))
	for i := range ms {
		out = append(out, toCompleteUser(&ms[i]))
	}
	return out
}
