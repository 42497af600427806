package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Identity is the authentication record behind a user: credentials and
// email confirmation state. Invitees get an unconfirmed identity before
// their user row exists.
type Identity struct {
	ID               uuid.UUID   `json:"id"`
	Email            string      `json:"email"`
	Phone            null.String `json:"phone"`
	PasswordHash     null.String `json:"-"`
	EmailConfirmedAt null.Time   `json:"emailConfirmedAt"`
	InvitedAt        null.Time   `json:"invitedAt"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// IsConfirmed reports whether the email address was confirmed
func (i *Identity) IsConfirmed() bool {
	return i.EmailConfirmedAt.Valid
}

// LoginInput represents input for password login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// MagicLinkInput requests a passwordless login link
type MagicLinkInput struct {
	Email string `json:"email" binding:"required,email"`
}

// MagicLinkLoginInput redeems a magic link token
type MagicLinkLoginInput struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// RefreshInput exchanges a refresh token for a new pair
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	SessionID    string        `json:"sessionId,omitempty"`
	User         *CompleteUser `json:"user"`
}

// MeResponse is the signed-in user with preferences
type MeResponse struct {
	User     *CompleteUser `json:"user"`
	Settings *UserSettings `json:"settings"`
}

// ChangePasswordInput replaces the signed-in user's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,password"`
}

// ConfirmEmailInput marks an address as confirmed
type ConfirmEmailInput struct {
	Email string `json:"email" binding:"required,email"`
}
