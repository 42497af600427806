package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/internal/infrastructure/models"
)

// AssignmentRepository implements assignment data operations
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// sideColumn names the column that holds a user of role
func sideColumn(role entities.UserRole) string {
	if role == entities.UserRoleClient {
		return "client_id"
	}
	return "employee_id"
}

// GetByID gets an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Assignment, error) {
	var m models.Assignment
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toAssignmentEntity(&m), nil
}

// GetByIDs gets the assignments among ids that exist
func (r *AssignmentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Assignment, error) {
	if len(ids) == 0 {
		return []*entities.Assignment{}, nil
	}
	var ms []models.Assignment
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toAssignmentEntities(ms), nil
}

// ListByUser lists assignments where userID is on role's side
func (r *AssignmentRepository) ListByUser(ctx context.Context, role entities.UserRole, userID uuid.UUID) ([]*entities.Assignment, error) {
	var ms []models.Assignment
	if err := GetDB(ctx, r.db).Where(sideColumn(role)+" = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toAssignmentEntities(ms), nil
}

// CreateBatch inserts assignments in one statement
func (r *AssignmentRepository) CreateBatch(ctx context.Context, assignments []*entities.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	ms := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		ms = append(ms, models.Assignment{ID: a.ID, EmployeeID: a.EmployeeID, ClientID: a.ClientID})
	}
	return translateError(GetDB(ctx, r.db).Create(&ms).Error)
}

// DeletePairs removes assignments between userID and counterpartIDs
func (r *AssignmentRepository) DeletePairs(ctx context.Context, role entities.UserRole, userID uuid.UUID, counterpartIDs []uuid.UUID) error {
	if len(counterpartIDs) == 0 {
		return nil
	}
	counterpart, ok := role.Counterpart()
	if !ok {
		return nil
	}
	return GetDB(ctx, r.db).
		Where(sideColumn(role)+" = ? AND "+sideColumn(counterpart)+" IN ?", userID, counterpartIDs).
		Delete(&models.Assignment{}).Error
}

// DeleteByIDs removes assignments by id
func (r *AssignmentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&models.Assignment{}).Error
}

func toAssignmentEntity(m *models.Assignment) *entities.Assignment {
	return &entities.Assignment{ID: m.ID, EmployeeID: m.EmployeeID, ClientID: m.ClientID}
}

func toAssignmentEntities(ms []models.Assignment) []*entities.Assignment {
	out := make([]*entities.Assignment, 0, len(ms))
	for i := range ms {
		out = append(out, toAssignmentEntity(&ms[i]))
	}
	return out
}
