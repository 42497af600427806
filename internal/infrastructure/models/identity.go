package models

import (
	"time"

	"github.com/google/uuid"
)

type Identity struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone            *string   `gorm:"type:varchar(20)"`
	PasswordHash     *string   `gorm:"type:varchar(255)"`
	EmailConfirmedAt *time.Time
	InvitedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// invites.id references auth_identities.id
	Invite *Invite `gorm:"foreignKey:ID"`
}

func (Identity) TableName() string {
	return "auth_identities"
}

type Invite struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role  string    `gorm:"type:varchar(20);not null"`
	Token *string   `gorm:"type:varchar(255);index"`
}

// All lists every model in dependency order for schema migration
func All() []interface{} {
	return []interface{}{
		&Geopoint{},
		&User{},
		&UserSettings{},
		&Assignment{},
		&Timecard{},
		&Identity{},
		&Invite{},
	}
}
