package usecases

import (
	"fmt"

	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
)

// Capability names an action guarded by role
type Capability string

const (
	CapClockIn          Capability = "clock in"
	CapClockOut         Capability = "clock out"
	CapEditTimecards    Capability = "edit timecards"
	CapReviewTimecards  Capability = "review pending timecards"
	CapViewAssignments  Capability = "view assignments"
	CapManageAssignment Capability = "manage assignments"
	CapManageUsers      Capability = "manage users"
	CapManageInvites    Capability = "manage invites"
	CapManageSettings   Capability = "manage other users' settings"
)

// AccessPolicy maps each capability to the roles allowed to use it
type AccessPolicy map[Capability][]entities.UserRole

// DefaultAccessPolicy is the role table every usecase consults
var DefaultAccessPolicy = AccessPolicy{
	CapClockIn:          {entities.UserRoleEmployee},
	CapClockOut:         {entities.UserRoleEmployee},
	CapEditTimecards:    {entities.UserRoleAdmin},
	CapReviewTimecards:  {entities.UserRoleAdmin},
	CapViewAssignments:  {entities.UserRoleAdmin, entities.UserRoleEmployee},
	CapManageAssignment: {entities.UserRoleAdmin},
	CapManageUsers:      {entities.UserRoleAdmin},
	CapManageInvites:    {entities.UserRoleAdmin},
	CapManageSettings:   {entities.UserRoleAdmin},
}

// Allows reports whether the role may use the capability
func (p AccessPolicy) Allows(role entities.UserRole, capability Capability) bool {
	for _, allowed := range p[capability] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Authorize fails with PRECONDITION_FAILED when the requestor's role lacks the capability
func (p AccessPolicy) Authorize(requestor entities.Requestor, capability Capability) error {
	if p.Allows(requestor.Role, capability) {
		return nil
	}
	return domainerrors.PreconditionFailed(fmt.Sprintf("role %q may not %s", requestor.Role, capability))
}
