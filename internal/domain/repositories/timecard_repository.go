package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
)

// TimecardRepository defines timecard data operations
type TimecardRepository interface {
	Create(ctx context.Context, timecard *entities.Timecard) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Timecard, error)
	Update(ctx context.Context, timecard *entities.Timecard) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteUnverifiedByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error)
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteByAssignmentIDs(ctx context.Context, assignmentIDs []uuid.UUID) error
	// List applies the query's date window and, when AssignmentIDs is non-nil, the assignment filter
	List(ctx context.Context, query entities.TimecardQuery) ([]*entities.Timecard, error)
	// ListActive returns active timecards; a nil assignmentIDs means every assignment
	ListActive(ctx context.Context, assignmentIDs []uuid.UUID) ([]*entities.Timecard, error)
	// ListPending returns verified, active timecards without an end time
	ListPending(ctx context.Context) ([]*entities.Timecard, error)
}
