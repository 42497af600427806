package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"timecard.backend/internal/config"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
	"timecard.backend/pkg/crypto"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/metrics"
	"timecard.backend/pkg/redis"
	"timecard.backend/pkg/utils"
)

var (
	generateVerificationCode = crypto.GenerateVerificationCode
	timeNow                  = time.Now
)

const defaultMaxVerifyAttempts = 5

// ClockInRules tunes the clock-in workflow
type ClockInRules struct {
	SMSPolicy         string
	CodeTTL           time.Duration
	MaxVerifyAttempts int
}

// TimecardUsecase handles the clock-in workflow and timecard administration
type TimecardUsecase struct {
	timecardRepo   repositories.TimecardRepository
	assignmentRepo repositories.AssignmentRepository
	userRepo       repositories.UserRepository
	uow            repositories.UnitOfWork
	sms            SMSSender
	locker         ClockInLocker
	attempts       AttemptCounter
	geofence       Geofence
	rules          ClockInRules
	policy         AccessPolicy
	views          viewBuilder
}

// NewTimecardUsecase creates a new timecard usecase
func NewTimecardUsecase(
	timecardRepo repositories.TimecardRepository,
	assignmentRepo repositories.AssignmentRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	sms SMSSender,
	locker ClockInLocker,
	attempts AttemptCounter,
	geofence Geofence,
	rules ClockInRules,
) *TimecardUsecase {
	if rules.MaxVerifyAttempts <= 0 {
		rules.MaxVerifyAttempts = defaultMaxVerifyAttempts
	}
	return &TimecardUsecase{
		timecardRepo:   timecardRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		uow:            uow,
		sms:            sms,
		locker:         locker,
		attempts:       attempts,
		geofence:       geofence,
		rules:          rules,
		policy:         DefaultAccessPolicy,
		views:          viewBuilder{assignmentRepo: assignmentRepo, userRepo: userRepo},
	}
}

// ClockIn starts an unverified timecard and texts the client a code the
// employee must enter to activate it.
func (u *TimecardUsecase) ClockIn(ctx context.Context, requestor entities.Requestor, input *entities.ClockInInput) (uuid.UUID, error) {
	if err := u.policy.Authorize(requestor, CapClockIn); err != nil {
		return uuid.Nil, err
	}
	if input.Latitude == nil || input.Longitude == nil {
		return uuid.Nil, domainerrors.BadRequest("latitude and longitude are required")
	}

	assignment, err := u.assignmentRepo.GetByID(ctx, input.AssignmentID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "assignment not found")
	}
	if assignment.EmployeeID != requestor.ID {
		return uuid.Nil, domainerrors.Unauthorized("assignment does not belong to you")
	}

	client, err := u.userRepo.GetCompleteByID(ctx, assignment.ClientID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "client not found")
	}
	if client.Geopoint == nil {
		return uuid.Nil, domainerrors.NotFound("client location not found")
	}
	employee, err := u.activeEmployee(ctx, requestor.ID)
	if err != nil {
		return uuid.Nil, err
	}

	if !u.geofence.Within(*input.Latitude, *input.Longitude, client.Geopoint.Latitude, client.Geopoint.Longitude) {
		metrics.ClockInAttempt(metrics.ClockInTooFar)
		return uuid.Nil, domainerrors.PreconditionFailed("you are too far from the client")
	}

	release, err := u.locker.Acquire(ctx, assignment.ID.String())
	if err != nil {
		if errors.Is(err, redis.ErrLockHeld) {
			metrics.ClockInAttempt(metrics.ClockInLocked)
			return uuid.Nil, domainerrors.Conflict("a clock-in for this assignment is already in progress")
		}
		return uuid.Nil, domainerrors.InternalError(err)
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			logger.Warn(ctx, "Failed to release clock-in lock", zap.String("assignmentId", assignment.ID.String()), zap.Error(relErr))
		}
	}()

	code, err := generateVerificationCode()
	if err != nil {
		return uuid.Nil, domainerrors.InternalError(err)
	}

	now := timeNow().UTC()
	timecard := &entities.Timecard{
		ID:               utils.GenerateUUIDv7(),
		AssignmentID:     assignment.ID,
		StartedAt:        now,
		IsActive:         false,
		VerificationCode: null.StringFrom(code),
		CreatedAt:        now,
	}

	// Replace any earlier unverified attempt so at most one code is live
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		removed, err := u.timecardRepo.DeleteUnverifiedByAssignment(txCtx, assignment.ID)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Debug(txCtx, "Replaced unverified timecards", zap.String("assignmentId", assignment.ID.String()), zap.Int64("count", removed))
		}
		return u.timecardRepo.Create(txCtx, timecard)
	})
	if err != nil {
		metrics.ClockInAttempt(metrics.ClockInFailed)
		return uuid.Nil, domainerrors.InternalError(err)
	}

	body := fmt.Sprintf("%s is clocking in. Please give them the following code: %s.", employee.FirstName, code)
	if err := u.sms.Send(ctx, client.PhoneNumber, body); err != nil {
		metrics.SMSFailure()
		logger.Error(ctx, "Failed to send clock-in code",
			zap.String("timecardId", timecard.ID.String()),
			zap.String("policy", u.rules.SMSPolicy),
			zap.Error(err),
		)
		if u.rules.SMSPolicy == config.SMSPolicyRollback {
			if delErr := u.timecardRepo.Delete(ctx, timecard.ID); delErr != nil && !errors.Is(delErr, domainerrors.ErrNotFound) {
				logger.Error(ctx, "Failed to roll back timecard", zap.String("timecardId", timecard.ID.String()), zap.Error(delErr))
			}
			metrics.ClockInAttempt(metrics.ClockInRolledBack)
			return uuid.Nil, domainerrors.InternalServerError("failed to send verification code")
		}
	}

	metrics.ClockInAttempt(metrics.ClockInCreated)
	logger.Info(ctx, "Clock-in started", zap.String("timecardId", timecard.ID.String()), zap.String("assignmentId", assignment.ID.String()))
	return timecard.ID, nil
}

// VerifyClockIn activates the requestor's pending timecard when the code matches.
// After MaxVerifyAttempts wrong codes the timecard is discarded and the
// employee has to clock in again, which texts the client a fresh code.
func (u *TimecardUsecase) VerifyClockIn(ctx context.Context, requestor entities.Requestor, input *entities.VerifyClockInInput) error {
	if err := u.policy.Authorize(requestor, CapClockIn); err != nil {
		return err
	}

	lockedOut := false
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		timecard, err := u.timecardRepo.GetByID(u.uow.WithLock(txCtx), input.TimecardID)
		if err != nil {
			return notFoundOr(err, "timecard not found")
		}
		assignment, err := u.assignmentRepo.GetByID(txCtx, timecard.AssignmentID)
		if err != nil {
			return notFoundOr(err, "assignment not found")
		}
		if assignment.EmployeeID != requestor.ID {
			return domainerrors.Unauthorized("timecard does not belong to you")
		}
		if _, err := u.activeEmployee(txCtx, requestor.ID); err != nil {
			return err
		}

		if timecard.IsActive {
			metrics.ClockInVerification(metrics.VerifyInvalidState)
			return domainerrors.PreconditionFailed("timecard is already active")
		}
		if !timecard.VerificationCode.Valid {
			metrics.ClockInVerification(metrics.VerifyInvalidState)
			return domainerrors.PreconditionFailed("timecard has been verified already")
		}
		now := timeNow().UTC()
		if u.rules.CodeTTL > 0 && now.Sub(timecard.CreatedAt) > u.rules.CodeTTL {
			metrics.ClockInVerification(metrics.VerifyExpired)
			return domainerrors.PreconditionFailed("verification code has expired, clock in again")
		}

		if subtle.ConstantTimeCompare([]byte(timecard.VerificationCode.String), []byte(input.Code)) != 1 {
			// The row lock serializes guesses for one timecard, so the count is exact
			misses, err := u.attempts.Fail(txCtx, timecard.ID.String())
			if err != nil {
				return domainerrors.InternalError(err)
			}
			metrics.ClockInVerification(metrics.VerifyWrongCode)
			if left := int64(u.rules.MaxVerifyAttempts) - misses; left > 0 {
				return domainerrors.Unauthorized(fmt.Sprintf("incorrect verification code, %d attempts left", left))
			}
			if err := u.timecardRepo.Delete(txCtx, timecard.ID); err != nil {
				return notFoundOr(err, "timecard not found")
			}
			lockedOut = true
			return nil
		}

		timecard.IsActive = true
		timecard.VerificationCode = null.String{}
		timecard.StartedAt = now
		if err := u.timecardRepo.Update(txCtx, timecard); err != nil {
			return notFoundOr(err, "timecard not found")
		}
		metrics.ClockInVerification(metrics.VerifyAccepted)
		return nil
	})
	if err != nil {
		return err
	}

	if err := u.attempts.Reset(ctx, input.TimecardID.String()); err != nil {
		logger.Warn(ctx, "Failed to reset verification attempts", zap.String("timecardId", input.TimecardID.String()), zap.Error(err))
	}
	if lockedOut {
		metrics.ClockInVerification(metrics.VerifyLockedOut)
		logger.Warn(ctx, "Timecard discarded after repeated wrong codes", zap.String("timecardId", input.TimecardID.String()))
		return domainerrors.PreconditionFailed("too many incorrect codes, clock in again")
	}
	return nil
}

// ClockOut ends an employee's shift
func (u *TimecardUsecase) ClockOut(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error {
	if err := u.policy.Authorize(requestor, CapClockOut); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		timecard, err := u.timecardRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return notFoundOr(err, "timecard not found")
		}
		assignment, err := u.assignmentRepo.GetByID(txCtx, timecard.AssignmentID)
		if err != nil {
			return notFoundOr(err, "assignment not found")
		}
		if assignment.EmployeeID != requestor.ID {
			return domainerrors.Unauthorized("timecard does not belong to you")
		}

		timecard.EndedAt = null.TimeFrom(timeNow().UTC())
		timecard.IsActive = false
		if err := u.timecardRepo.Update(txCtx, timecard); err != nil {
			return notFoundOr(err, "timecard not found")
		}
		return nil
	})
}

// Update overwrites shift boundaries and counts the edit
func (u *TimecardUsecase) Update(ctx context.Context, requestor entities.Requestor, input *entities.UpdateTimecardInput) error {
	if err := u.policy.Authorize(requestor, CapEditTimecards); err != nil {
		return err
	}
	if input.EndedAt.Before(input.StartedAt) {
		return domainerrors.BadRequest("endedAt must not be before startedAt")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		timecard, err := u.timecardRepo.GetByID(u.uow.WithLock(txCtx), input.ID)
		if err != nil {
			return notFoundOr(err, "timecard not found")
		}

		timecard.StartedAt = input.StartedAt.UTC()
		timecard.EndedAt = null.TimeFrom(input.EndedAt.UTC())
		timecard.EditedCount++
		timecard.IsActive = false
		if err := u.timecardRepo.Update(txCtx, timecard); err != nil {
			return notFoundOr(err, "timecard not found")
		}
		return nil
	})
}

// Delete removes a timecard
func (u *TimecardUsecase) Delete(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error {
	if err := u.policy.Authorize(requestor, CapEditTimecards); err != nil {
		return err
	}
	if err := u.timecardRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "timecard not found")
	}
	return nil
}

// List returns a page of timecards visible to the requestor within a date range
func (u *TimecardUsecase) List(ctx context.Context, requestor entities.Requestor, filter entities.TimecardListFilter) (*entities.Page[*entities.TimecardView], error) {
	scope, ok, err := u.visibleAssignments(ctx, requestor)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !ok {
		return entities.EmptyPage[*entities.TimecardView](), nil
	}

	from, to := filter.DateRange.Bounds()
	page, err := fetchPage(ctx, filter.Page, filter.PerPage, func(ctx context.Context, offset, limit int) ([]*entities.Timecard, error) {
		return u.timecardRepo.List(ctx, entities.TimecardQuery{
			From:          from,
			To:            to,
			AssignmentIDs: scope,
			Offset:        offset,
			Limit:         limit,
		})
	})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	views, err := u.views.timecardViews(ctx, page.List)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.Page[*entities.TimecardView]{List: views, HasNextPage: page.HasNextPage}, nil
}

// Pending returns verified shifts that have not ended
func (u *TimecardUsecase) Pending(ctx context.Context, requestor entities.Requestor) ([]*entities.TimecardView, error) {
	if err := u.policy.Authorize(requestor, CapReviewTimecards); err != nil {
		return nil, err
	}
	timecards, err := u.timecardRepo.ListPending(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	views, err := u.views.timecardViews(ctx, timecards)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return views, nil
}

// GetActive returns active shifts visible to the requestor
func (u *TimecardUsecase) GetActive(ctx context.Context, requestor entities.Requestor) ([]*entities.TimecardView, error) {
	scope, ok, err := u.visibleAssignments(ctx, requestor)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !ok {
		return []*entities.TimecardView{}, nil
	}

	timecards, err := u.timecardRepo.ListActive(ctx, scope)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	views, err := u.views.timecardViews(ctx, timecards)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return views, nil
}

// activeEmployee reloads the requestor. Access tokens outlive deactivation.
func (u *TimecardUsecase) activeEmployee(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	employee, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "employee not found")
	}
	if !employee.IsActive {
		return nil, domainerrors.Unauthorized("your account is inactive")
	}
	return employee, nil
}

// visibleAssignments returns the assignment filter for the requestor.
// Admins get a nil filter (everything). ok is false when nothing is visible.
func (u *TimecardUsecase) visibleAssignments(ctx context.Context, requestor entities.Requestor) ([]uuid.UUID, bool, error) {
	switch requestor.Role {
	case entities.UserRoleAdmin:
		return nil, true, nil
	case entities.UserRoleEmployee:
		assignments, err := u.assignmentRepo.ListByUser(ctx, entities.UserRoleEmployee, requestor.ID)
		if err != nil {
			return nil, false, err
		}
		if len(assignments) == 0 {
			return nil, false, nil
		}
		return assignmentIDs(assignments), true, nil
	}
	return nil, false, nil
}

// notFoundOr maps ErrNotFound to a NOT_FOUND AppError and anything else to INTERNAL_SERVER_ERROR.
// AppErrors pass through unchanged.
func notFoundOr(err error, message string) error {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(message)
	}
	return domainerrors.InternalError(err)
}
