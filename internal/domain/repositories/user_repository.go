package repositories

import (
	"context"

	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetCompleteByID(ctx context.Context, id uuid.UUID) (*entities.CompleteUser, error)
	// GetCompleteByIDs returns the users ordered by last name; unknown ids are skipped
	GetCompleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.CompleteUser, error)
	// ListByRole returns users of role except excludeID, ordered by last name
	ListByRole(ctx context.Context, role entities.UserRole, excludeID uuid.UUID, offset, limit int) ([]*entities.CompleteUser, error)
	ListAllExcept(ctx context.Context, excludeID uuid.UUID) ([]*entities.CompleteUser, error)
	ListAllByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)
	// ContactTaken reports whether another user (not exceptID) has the email or phone number
	ContactTaken(ctx context.Context, email, phone string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *entities.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GeopointRepository defines geopoint data operations
type GeopointRepository interface {
	Upsert(ctx context.Context, geopoint *entities.Geopoint) error
	GetByID(ctx context.Context, id string) (*entities.Geopoint, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Geopoint, error)
}

// UserSettingsRepository defines per-user settings operations
type UserSettingsRepository interface {
	Create(ctx context.Context, settings *entities.UserSettings) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error)
	Update(ctx context.Context, settings *entities.UserSettings) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// IdentityRepository stores authentication identities
type IdentityRepository interface {
	Create(ctx context.Context, identity *entities.Identity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Identity, error)
	GetByEmail(ctx context.Context, email string) (*entities.Identity, error)
	Update(ctx context.Context, identity *entities.Identity) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteUnconfirmed(ctx context.Context, ids []uuid.UUID) error
}
