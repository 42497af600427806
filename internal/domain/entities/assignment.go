package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Assignment pairs one employee with one client
type Assignment struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employeeId"`
	ClientID   uuid.UUID `json:"clientId"`
}

// SideOf returns the id on the given role's side of the pairing
func (a *Assignment) SideOf(role UserRole) uuid.UUID {
	if role == UserRoleClient {
		return a.ClientID
	}
	return a.EmployeeID
}

// AssignmentUser is the display form of one side of an assignment
type AssignmentUser struct {
	ID         uuid.UUID   `json:"id"`
	FirstName  string      `json:"firstName"`
	MiddleName null.String `json:"middleName"`
	LastName   string      `json:"lastName"`
	Geopoint   *Geopoint   `json:"geopoint,omitempty"`
}

// AssignmentView is an assignment joined with both parties
type AssignmentView struct {
	ID       uuid.UUID       `json:"id"`
	Client   *AssignmentUser `json:"client"`
	Employee *AssignmentUser `json:"employee"`
}

// UserAssignments is the assigned/assignable split for one user
type UserAssignments struct {
	Assigned   []*AssignmentView `json:"assigned"`
	Assignable []*AssignmentUser `json:"assignable"`
}

// UpdateAssignmentsInput adds and removes counterparts of user ID
type UpdateAssignmentsInput struct {
	ID      uuid.UUID   `json:"id" binding:"required"`
	Added   []uuid.UUID `json:"added"`
	Removed []uuid.UUID `json:"removed"`
}
