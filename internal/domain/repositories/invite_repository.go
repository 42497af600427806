package repositories

import (
	"context"

	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
)

// InviteRepository defines invite data operations
type InviteRepository interface {
	// Upsert inserts the invite or replaces the row holding the same email
	Upsert(ctx context.Context, invite *entities.Invite) error
	GetByEmail(ctx context.Context, email string) (*entities.Invite, error)
	ExistsByToken(ctx context.Context, token string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*entities.Invite, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
