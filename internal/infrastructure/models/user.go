package models

import (
	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"type:varchar(255);not null"`
	MiddleName  *string   `gorm:"type:varchar(255)"`
	LastName    string    `gorm:"type:varchar(255);not null;index"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PhoneNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Role        string    `gorm:"type:varchar(20);not null;index"`
	IsActive    bool      `gorm:"not null;default:true"`
	GeopointID  string    `gorm:"type:varchar(255);not null;index"`

	// Associations
	Geopoint *Geopoint `gorm:"foreignKey:GeopointID"`
	// user_settings.id references users.id
	Settings *UserSettings `gorm:"foreignKey:ID"`
}

type Geopoint struct {
	ID               string  `gorm:"type:varchar(255);primaryKey"`
	Latitude         float64 `gorm:"not null"`
	Longitude        float64 `gorm:"not null"`
	FormattedAddress string  `gorm:"type:text;not null"`
	AptNumber        *string `gorm:"type:varchar(50)"`
}

type UserSettings struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsDarkMode bool      `gorm:"not null;default:false"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
