package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Timecard represents one shift of an assignment.
// A non-null VerificationCode means the clock-in is not yet confirmed.
type Timecard struct {
	ID               uuid.UUID   `json:"id"`
	AssignmentID     uuid.UUID   `json:"assignmentId"`
	StartedAt        time.Time   `json:"startedAt"`
	EndedAt          null.Time   `json:"endedAt"`
	IsActive         bool        `json:"isActive"`
	VerificationCode null.String `json:"-"`
	EditedCount      int         `json:"editedCount"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// IsVerified reports whether the clock-in code was confirmed
func (t *Timecard) IsVerified() bool {
	return !t.VerificationCode.Valid
}

// TimecardView is a timecard joined with its assignment parties
type TimecardView struct {
	ID          uuid.UUID       `json:"id"`
	Assignment  *AssignmentView `json:"assignment"`
	StartedAt   time.Time       `json:"startedAt"`
	EndedAt     null.Time       `json:"endedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	IsActive    bool            `json:"isActive"`
	EditedCount int             `json:"editedCount"`
}

// ClockInInput starts a shift at the requestor's current position
type ClockInInput struct {
	AssignmentID uuid.UUID `json:"assignmentId" binding:"required"`
	Latitude     *float64  `json:"latitude" binding:"required,latitude"`
	Longitude    *float64  `json:"longitude" binding:"required,longitude"`
}

// VerifyClockInInput confirms a clock-in with the code the client received
type VerifyClockInInput struct {
	TimecardID uuid.UUID `json:"timecardId"`
	Code       string    `json:"code" binding:"required,len=4,numeric"`
}

// UpdateTimecardInput is an admin correction of shift boundaries
type UpdateTimecardInput struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"startedAt" binding:"required"`
	EndedAt   time.Time `json:"endedAt" binding:"required"`
}

// DateRange bounds a listing by calendar day, both ends inclusive
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounds widens the range to start-of-day and end-of-day
func (r DateRange) Bounds() (time.Time, time.Time) {
	y, m, d := r.Start.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, r.Start.Location())
	y, m, d = r.End.Date()
	to := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), r.End.Location())
	return from, to
}

// TimecardListFilter selects a page of timecards
type TimecardListFilter struct {
	DateRange DateRange
	Page      int
	PerPage   int
}

// TimecardQuery is the repository side of a listing
type TimecardQuery struct {
	From          time.Time
	To            time.Time
	AssignmentIDs []uuid.UUID
	Offset        int
	Limit         int
}
