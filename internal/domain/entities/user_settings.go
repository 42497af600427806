package entities

import "github.com/google/uuid"

// UserSettings holds per-user preferences. ID equals the user id.
type UserSettings struct {
	ID         uuid.UUID `json:"id"`
	IsDarkMode bool      `json:"isDarkMode"`
}

// DefaultUserSettings is what every new user starts with
func DefaultUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{ID: userID, IsDarkMode: false}
}
