package models

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignment_pair"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignment_pair"`

	// Associations
	Employee *User `gorm:"foreignKey:EmployeeID"`
	Client   *User `gorm:"foreignKey:ClientID"`
}

type Timecard struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StartedAt        time.Time `gorm:"not null;index"`
	EndedAt          *time.Time
	IsActive         bool    `gorm:"not null;default:false"`
	VerificationCode *string `gorm:"type:varchar(4)"`
	EditedCount      int     `gorm:"not null;default:0"`
	CreatedAt        time.Time

	// Associations
	Assignment *Assignment `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}
