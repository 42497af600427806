package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Invite is a pending registration keyed by email. Its id is the id of the
// unconfirmed identity created for the invitee.
type Invite struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Role  UserRole    `json:"role"`
	Token null.String `json:"-"`
}

// InviteInput asks for an invitation email
type InviteInput struct {
	Email string   `json:"email" binding:"required,email"`
	Role  UserRole `json:"role" binding:"required,oneof=admin employee client"`
}

// SignUpInput completes an invitation
type SignUpInput struct {
	Email       string         `json:"email" binding:"required,email"`
	Token       string         `json:"token" binding:"required"`
	Password    string         `json:"password" binding:"required,password"`
	PhoneNumber string         `json:"phoneNumber" binding:"required,phone"`
	FirstName   string         `json:"firstName" binding:"required,name"`
	MiddleName  *string        `json:"middleName" binding:"omitempty,max=255"`
	LastName    string         `json:"lastName" binding:"required,name"`
	Geopoint    *GeopointInput `json:"geopoint" binding:"required"`
}

// SignUpResult identifies the created user
type SignUpResult struct {
	UserID uuid.UUID `json:"userId"`
	Role   UserRole  `json:"role"`
}
