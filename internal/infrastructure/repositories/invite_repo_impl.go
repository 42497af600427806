package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/internal/infrastructure/models"
)

// InviteRepository implements invite data operations
type InviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// Upsert inserts an invite, or replaces id, role and token of the invite with the same email
func (r *InviteRepository) Upsert(ctx context.Context, invite *entities.Invite) error {
	m := &models.Invite{
		ID:    invite.ID,
		Email: invite.Email,
		Role:  string(invite.Role),
		Token: invite.Token.Ptr(),
	}
	return translateError(GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "role", "token"}),
	}).Create(m).Error)
}

// GetByEmail gets the invite for an email
func (r *InviteRepository) GetByEmail(ctx context.Context, email string) (*entities.Invite, error) {
	var m models.Invite
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toInviteEntity(&m), nil
}

// ExistsByToken reports whether any invite carries token
func (r *InviteRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Invite{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists one window of invites ordered by email
func (r *InviteRepository) List(ctx context.Context, offset, limit int) ([]*entities.Invite, error) {
	var ms []models.Invite
	if err := GetDB(ctx, r.db).Order("email ASC").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Invite, 0, len(ms))
	for i := range ms {
		out = append(out, toInviteEntity(&ms[i]))
	}
	return out, nil
}

// DeleteByIDs removes invites by id
func (r *InviteRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&models.Invite{}).Error
}

func toInviteEntity(m *models.Invite) *entities.Invite {
	return &entities.Invite{
		ID:    m.ID,
		Email: m.Email,
		Role:  entities.UserRole(m.Role),
		Token: null.StringFromPtr(m.Token),
	}
}
