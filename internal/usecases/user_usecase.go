package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/utils"
)

// UserUsecase handles user profile management
type UserUsecase struct {
	userRepo       repositories.UserRepository
	geopointRepo   repositories.GeopointRepository
	settingsRepo   repositories.UserSettingsRepository
	identityRepo   repositories.IdentityRepository
	assignmentRepo repositories.AssignmentRepository
	timecardRepo   repositories.TimecardRepository
	uow            repositories.UnitOfWork
	policy         AccessPolicy
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	geopointRepo repositories.GeopointRepository,
	settingsRepo repositories.UserSettingsRepository,
	identityRepo repositories.IdentityRepository,
	assignmentRepo repositories.AssignmentRepository,
	timecardRepo repositories.TimecardRepository,
	uow repositories.UnitOfWork,
) *UserUsecase {
	return &UserUsecase{
		userRepo:       userRepo,
		geopointRepo:   geopointRepo,
		settingsRepo:   settingsRepo,
		identityRepo:   identityRepo,
		assignmentRepo: assignmentRepo,
		timecardRepo:   timecardRepo,
		uow:            uow,
		policy:         DefaultAccessPolicy,
	}
}

// List returns a page of users with the given role, excluding the requestor
func (u *UserUsecase) List(ctx context.Context, requestor entities.Requestor, filter entities.UserListFilter) (*entities.Page[*entities.CompleteUser], error) {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return nil, err
	}
	if !filter.Role.Valid() {
		return nil, domainerrors.BadRequest("invalid role")
	}

	page, err := fetchPage(ctx, filter.Page, filter.PerPage, func(ctx context.Context, offset, limit int) ([]*entities.CompleteUser, error) {
		return u.userRepo.ListByRole(ctx, filter.Role, requestor.ID, offset, limit)
	})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return page, nil
}

// GetByIDs returns the known users among ids, ordered by last name
func (u *UserUsecase) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.CompleteUser, error) {
	if len(ids) == 0 {
		return []*entities.CompleteUser{}, nil
	}
	users, err := u.userRepo.GetCompleteByIDs(ctx, ids)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return users, nil
}

// GetAll returns every user except the requestor
func (u *UserUsecase) GetAll(ctx context.Context, requestor entities.Requestor) ([]*entities.CompleteUser, error) {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return nil, err
	}
	users, err := u.userRepo.ListAllExcept(ctx, requestor.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return users, nil
}

// Create inserts a user with its geopoint, default settings and an
// unconfirmed identity so the user can later sign in by magic link.
func (u *UserUsecase) Create(ctx context.Context, requestor entities.Requestor, input *entities.CreateUserInput) (*entities.CompleteUser, error) {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return nil, err
	}
	if input.Geopoint == nil {
		return nil, domainerrors.BadRequest("geopoint is required")
	}

	id := utils.GenerateUUIDv7()
	if input.ID != nil && *input.ID != uuid.Nil {
		id = *input.ID
	}

	taken, err := u.userRepo.ContactTaken(ctx, input.Email, input.PhoneNumber, id)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if taken {
		return nil, domainerrors.Conflict("email or phone number is already in use")
	}

	geopoint := input.Geopoint.ToGeopoint()
	user := &entities.User{
		ID:          id,
		FirstName:   input.FirstName,
		MiddleName:  null.StringFromPtr(input.MiddleName),
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Role:        input.Role,
		IsActive:    true,
		GeopointID:  geopoint.ID,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.geopointRepo.Upsert(txCtx, geopoint); err != nil {
			return err
		}
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := u.settingsRepo.Create(txCtx, entities.DefaultUserSettings(user.ID)); err != nil {
			return err
		}
		if _, err := u.identityRepo.GetByID(txCtx, user.ID); err == nil {
			return nil
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.identityRepo.Create(txCtx, &entities.Identity{
			ID:    user.ID,
			Email: user.Email,
			Phone: null.StringFrom(user.PhoneNumber),
		})
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("user already exists")
		}
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "User created", zap.String("userId", user.ID.String()), zap.String("role", string(user.Role)))
	return &entities.CompleteUser{User: *user, Geopoint: geopoint}, nil
}

// UpdateClient edits a client's profile
func (u *UserUsecase) UpdateClient(ctx context.Context, requestor entities.Requestor, input *entities.UpdateUserInput) error {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return err
	}
	return u.update(ctx, input, entities.UserRoleClient)
}

// UpdateSelf lets any signed-in user edit their own profile
func (u *UserUsecase) UpdateSelf(ctx context.Context, requestor entities.Requestor, input *entities.UpdateUserInput) error {
	input.ID = requestor.ID
	// Email is tied to the identity and changes through a separate flow
	input.Email = nil
	return u.update(ctx, input, "")
}

// UpdateEmployee toggles an employee's active flag
func (u *UserUsecase) UpdateEmployee(ctx context.Context, requestor entities.Requestor, input *entities.UpdateEmployeeInput) error {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return err
	}
	user, err := u.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}
	if user.Role != entities.UserRoleEmployee {
		return domainerrors.NotFound("employee not found")
	}
	if err := u.userRepo.SetActive(ctx, input.ID, input.IsActive); err != nil {
		return notFoundOr(err, "employee not found")
	}
	return nil
}

// update applies a partial update. A non-empty role restricts the target.
func (u *UserUsecase) update(ctx context.Context, input *entities.UpdateUserInput, role entities.UserRole) error {
	user, err := u.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}
	if role != "" && user.Role != role {
		return domainerrors.NotFound(string(role) + " not found")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.MiddleName != nil {
		user.MiddleName = null.StringFrom(*input.MiddleName)
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if input.Email != nil || input.PhoneNumber != nil {
		taken, err := u.userRepo.ContactTaken(ctx, user.Email, user.PhoneNumber, user.ID)
		if err != nil {
			return domainerrors.InternalError(err)
		}
		if taken {
			return domainerrors.Conflict("email or phone number is already in use")
		}
	}

	var geopoint *entities.Geopoint
	if input.Geopoint != nil {
		geopoint = input.Geopoint.ToGeopoint()
		user.GeopointID = geopoint.ID
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if geopoint != nil {
			if err := u.geopointRepo.Upsert(txCtx, geopoint); err != nil {
				return err
			}
		}
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return domainerrors.Conflict("email or phone number is already in use")
		}
		return notFoundOr(err, "user not found")
	}
	return nil
}

// Delete removes users with their settings, assignments, timecards and
// identities in a single transaction.
func (u *UserUsecase) Delete(ctx context.Context, requestor entities.Requestor, ids []uuid.UUID) error {
	if err := u.policy.Authorize(requestor, CapManageUsers); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domainerrors.BadRequest("no users to delete")
	}
	for _, id := range ids {
		if id == requestor.ID {
			return domainerrors.BadRequest("you cannot delete yourself")
		}
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, id := range ids {
			if err := u.deleteOne(txCtx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	logger.Info(ctx, "Users deleted", zap.Int("count", len(ids)), zap.String("by", requestor.ID.String()))
	return nil
}

func (u *UserUsecase) deleteOne(ctx context.Context, id uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, ok := user.Role.Counterpart(); ok {
		assignments, err := u.assignmentRepo.ListByUser(ctx, user.Role, user.ID)
		if err != nil {
			return err
		}
		if len(assignments) > 0 {
			ids := assignmentIDs(assignments)
			if err := u.timecardRepo.DeleteByAssignmentIDs(ctx, ids); err != nil {
				return err
			}
			if err := u.assignmentRepo.DeleteByIDs(ctx, ids); err != nil {
				return err
			}
		}
	}

	if err := u.settingsRepo.Delete(ctx, user.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := u.identityRepo.Delete(ctx, user.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}
