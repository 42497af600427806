package entities

import "github.com/google/uuid"

// Requestor is the authenticated caller, passed explicitly into every usecase
type Requestor struct {
	ID    uuid.UUID
	Email string
	Role  UserRole
}

// IsAdmin reports whether the caller is an admin
func (r Requestor) IsAdmin() bool {
	return r.Role == UserRoleAdmin
}
