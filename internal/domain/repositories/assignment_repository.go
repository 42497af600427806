package repositories

import (
	"context"

	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
)

// AssignmentRepository defines assignment data operations
type AssignmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Assignment, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Assignment, error)
	// ListByUser returns the assignments where userID sits on role's side
	ListByUser(ctx context.Context, role entities.UserRole, userID uuid.UUID) ([]*entities.Assignment, error)
	CreateBatch(ctx context.Context, assignments []*entities.Assignment) error
	// DeletePairs removes assignments between userID (on role's side) and any of counterpartIDs
	DeletePairs(ctx context.Context, role entities.UserRole, userID uuid.UUID, counterpartIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
