package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
	UserRoleClient   UserRole = "client"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEmployee, UserRoleClient:
		return true
	}
	return false
}

// Counterpart returns the role on the other side of an assignment.
// Only employees and clients can be paired.
func (r UserRole) Counterpart() (UserRole, bool) {
	switch r {
	case UserRoleEmployee:
		return UserRoleClient, true
	case UserRoleClient:
		return UserRoleEmployee, true
	}
	return "", false
}

// User represents a user entity
type User struct {
	ID          uuid.UUID   `json:"id"`
	FirstName   string      `json:"firstName"`
	MiddleName  null.String `json:"middleName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        UserRole    `json:"role"`
	IsActive    bool        `json:"isActive"`
	GeopointID  string      `json:"geopointId"`
}

// FullName is "first last", the form used in SMS bodies and listings
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CompleteUser is a user together with its geopoint
type CompleteUser struct {
	User
	Geopoint *Geopoint `json:"geopoint"`
}

// CreateUserInput represents input for creating a user and its geopoint
type CreateUserInput struct {
	ID          *uuid.UUID     `json:"id"`
	FirstName   string         `json:"firstName" binding:"required,name"`
	MiddleName  *string        `json:"middleName" binding:"omitempty,max=255"`
	LastName    string         `json:"lastName" binding:"required,name"`
	Email       string         `json:"email" binding:"required,email"`
	PhoneNumber string         `json:"phoneNumber" binding:"required,phone"`
	Role        UserRole       `json:"role" binding:"required,oneof=admin employee client"`
	Geopoint    *GeopointInput `json:"geopoint" binding:"required"`
}

// UpdateUserInput is a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	ID          uuid.UUID      `json:"id"`
	FirstName   *string        `json:"firstName" binding:"omitempty,name"`
	MiddleName  *string        `json:"middleName" binding:"omitempty,max=255"`
	LastName    *string        `json:"lastName" binding:"omitempty,name"`
	Email       *string        `json:"email" binding:"omitempty,email"`
	PhoneNumber *string        `json:"phoneNumber" binding:"omitempty,phone"`
	Geopoint    *GeopointInput `json:"geopoint"`
}

// UpdateEmployeeInput toggles the active flag
type UpdateEmployeeInput struct {
	ID       uuid.UUID `json:"id"`
	IsActive bool      `json:"isActive"`
}

// UserListFilter selects a page of users of one role
type UserListFilter struct {
	Role    UserRole
	Page    int
	PerPage int
}
