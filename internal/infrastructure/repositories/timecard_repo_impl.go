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

// TimecardRepository implements timecard data operations
type TimecardRepository struct {
	db *gorm.DB
}

// NewTimecardRepository creates a new timecard repository
func NewTimecardRepository(db *gorm.DB) *TimecardRepository {
	return &TimecardRepository{db: db}
}

// Create creates a new timecard
func (r *TimecardRepository) Create(ctx context.Context, timecard *entities.Timecard) error {
	m := &models.Timecard{
		ID:               timecard.ID,
		AssignmentID:     timecard.AssignmentID,
		StartedAt:        timecard.StartedAt,
		EndedAt:          timecard.EndedAt.Ptr(),
		IsActive:         timecard.IsActive,
		VerificationCode: timecard.VerificationCode.Ptr(),
		EditedCount:      timecard.EditedCount,
		CreatedAt:        timecard.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	timecard.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a timecard by ID
func (r *TimecardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Timecard, error) {
	var m models.Timecard
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toTimecardEntity(&m), nil
}

// Update writes every mutable column of a timecard
func (r *TimecardRepository) Update(ctx context.Context, timecard *entities.Timecard) error {
	updates := map[string]interface{}{
		"started_at":        timecard.StartedAt,
		"ended_at":          timecard.EndedAt.Ptr(),
		"is_active":         timecard.IsActive,
		"verification_code": timecard.VerificationCode.Ptr(),
		"edited_count":      timecard.EditedCount,
	}
	result := GetDB(ctx, r.db).Model(&models.Timecard{}).Where("id = ?", timecard.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a timecard
func (r *TimecardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Timecard{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteUnverifiedByAssignment removes pending clock-ins of an assignment
func (r *TimecardRepository) DeleteUnverifiedByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).
		Where("assignment_id = ? AND verification_code IS NOT NULL", assignmentID).
		Delete(&models.Timecard{})
	return result.RowsAffected, result.Error
}

// DeleteUnverifiedBefore removes pending clock-ins created before cutoff
func (r *TimecardRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := GetDB(ctx, r.db).
		Where("verification_code IS NOT NULL AND created_at < ?", cutoff).
		Delete(&models.Timecard{})
	return result.RowsAffected, result.Error
}

// DeleteByAssignmentIDs removes every timecard of the given assignments
func (r *TimecardRepository) DeleteByAssignmentIDs(ctx context.Context, assignmentIDs []uuid.UUID) error {
	if len(assignmentIDs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Where("assignment_id IN ?", assignmentIDs).Delete(&models.Timecard{}).Error
}

// List lists one window of timecards inside a date range, newest first
func (r *TimecardRepository) List(ctx context.Context, query entities.TimecardQuery) ([]*entities.Timecard, error) {
	db := GetDB(ctx, r.db).
		Where("started_at >= ? AND ended_at <= ?", query.From, query.To)
	if query.AssignmentIDs != nil {
		if len(query.AssignmentIDs) == 0 {
			return []*entities.Timecard{}, nil
		}
		db = db.Where("assignment_id IN ?", query.AssignmentIDs)
	}

	var ms []models.Timecard
	if err := db.Order("started_at DESC").Order("id ASC").
		Offset(query.Offset).Limit(query.Limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toTimecardEntities(ms), nil
}

// ListActive lists active timecards
func (r *TimecardRepository) ListActive(ctx context.Context, assignmentIDs []uuid.UUID) ([]*entities.Timecard, error) {
	db := GetDB(ctx, r.db).Where("is_active = ?", true)
	if assignmentIDs != nil {
		if len(assignmentIDs) == 0 {
			return []*entities.Timecard{}, nil
		}
		db = db.Where("assignment_id IN ?", assignmentIDs)
	}

	var ms []models.Timecard
	if err := db.Order("started_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toTimecardEntities(ms), nil
}

// ListPending lists verified, running timecards
func (r *TimecardRepository) ListPending(ctx context.Context) ([]*entities.Timecard, error) {
	var ms []models.Timecard
	if err := GetDB(ctx, r.db).
		Where("is_active = ? AND ended_at IS NULL AND verification_code IS NULL", true).
		Order("started_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toTimecardEntities(ms), nil
}

func toTimecardEntity(m *models.Timecard) *entities.Timecard {
	return &entities.Timecard{
		ID:               m.ID,
		AssignmentID:     m.AssignmentID,
		StartedAt:        m.StartedAt,
		EndedAt:          null.TimeFromPtr(m.EndedAt),
		IsActive:         m.IsActive,
		VerificationCode: null.StringFromPtr(m.VerificationCode),
		EditedCount:      m.EditedCount,
		CreatedAt:        m.CreatedAt,
	}
}

func toTimecardEntities(ms []models.Timecard) []*entities.Timecard {
	out := make([]*entities.Timecard, 0, len(ms))
	for i := range ms {
		out = append(out, toTimecardEntity(&ms[i]))
	}
	return out
}
