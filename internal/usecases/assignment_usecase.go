package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/utils"
)

// AssignmentUsecase resolves and edits employee/client pairings
type AssignmentUsecase struct {
	assignmentRepo repositories.AssignmentRepository
	userRepo       repositories.UserRepository
	uow            repositories.UnitOfWork
	policy         AccessPolicy
	views          viewBuilder
}

// NewAssignmentUsecase creates a new assignment usecase
func NewAssignmentUsecase(
	assignmentRepo repositories.AssignmentRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *AssignmentUsecase {
	return &AssignmentUsecase{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		uow:            uow,
		policy:         DefaultAccessPolicy,
		views:          viewBuilder{assignmentRepo: assignmentRepo, userRepo: userRepo},
	}
}

// GetAssigned returns the assignments of userID joined with both parties
func (u *AssignmentUsecase) GetAssigned(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) ([]*entities.AssignmentView, error) {
	if err := u.policy.Authorize(requestor, CapViewAssignments); err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return u.assigned(ctx, target)
}

// GetAvailable returns counterpart users not yet paired with userID
func (u *AssignmentUsecase) GetAvailable(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) ([]*entities.AssignmentUser, error) {
	if err := u.policy.Authorize(requestor, CapViewAssignments); err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	assigned, err := u.assigned(ctx, target)
	if err != nil {
		return nil, err
	}
	return u.available(ctx, target, assigned)
}

// GetByUserID returns both the assigned and assignable sets of userID
func (u *AssignmentUsecase) GetByUserID(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) (*entities.UserAssignments, error) {
	if err := u.policy.Authorize(requestor, CapViewAssignments); err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	assigned, err := u.assigned(ctx, target)
	if err != nil {
		return nil, err
	}
	assignable, err := u.available(ctx, target, assigned)
	if err != nil {
		return nil, err
	}
	return &entities.UserAssignments{Assigned: assigned, Assignable: assignable}, nil
}

// Update removes and adds counterparts of a user in one transaction
func (u *AssignmentUsecase) Update(ctx context.Context, requestor entities.Requestor, input *entities.UpdateAssignmentsInput) error {
	if err := u.policy.Authorize(requestor, CapManageAssignment); err != nil {
		return err
	}

	target, err := u.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}
	counterpart, ok := target.Role.Counterpart()
	if !ok {
		return domainerrors.BadRequest(fmt.Sprintf("users with role %q cannot be assigned", target.Role))
	}

	// Every added id must exist and hold the opposite role
	for _, id := range input.Added {
		other, err := u.userRepo.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, fmt.Sprintf("user %s not found", id))
		}
		if other.Role != counterpart {
			return domainerrors.BadRequest(fmt.Sprintf("user %s is not a %s", id, counterpart))
		}
	}

	added := make([]*entities.Assignment, 0, len(input.Added))
	for _, id := range input.Added {
		a := &entities.Assignment{ID: utils.GenerateUUIDv7()}
		if target.Role == entities.UserRoleEmployee {
			a.EmployeeID, a.ClientID = target.ID, id
		} else {
			a.EmployeeID, a.ClientID = id, target.ID
		}
		added = append(added, a)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.assignmentRepo.DeletePairs(txCtx, target.Role, target.ID, input.Removed); err != nil {
			return err
		}
		return u.assignmentRepo.CreateBatch(txCtx, added)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return domainerrors.Conflict("assignment already exists")
		}
		return domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Assignments updated",
		zap.String("userId", target.ID.String()),
		zap.Int("added", len(input.Added)),
		zap.Int("removed", len(input.Removed)),
	)
	return nil
}

func (u *AssignmentUsecase) assigned(ctx context.Context, target *entities.User) ([]*entities.AssignmentView, error) {
	if _, ok := target.Role.Counterpart(); !ok {
		return []*entities.AssignmentView{}, nil
	}
	assignments, err := u.assignmentRepo.ListByUser(ctx, target.Role, target.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	views, err := u.views.assignmentViews(ctx, assignments, true)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return views, nil
}

func (u *AssignmentUsecase) available(ctx context.Context, target *entities.User, assigned []*entities.AssignmentView) ([]*entities.AssignmentUser, error) {
	counterpart, ok := target.Role.Counterpart()
	if !ok {
		return []*entities.AssignmentUser{}, nil
	}

	taken := make(map[uuid.UUID]struct{}, len(assigned))
	for _, v := range assigned {
		if counterpart == entities.UserRoleClient && v.Client != nil {
			taken[v.Client.ID] = struct{}{}
		}
		if counterpart == entities.UserRoleEmployee && v.Employee != nil {
			taken[v.Employee.ID] = struct{}{}
		}
	}

	candidates, err := u.userRepo.ListAllByRole(ctx, counterpart)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	out := make([]*entities.AssignmentUser, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c.ID]; ok {
			continue
		}
		out = append(out, &entities.AssignmentUser{
			ID:         c.ID,
			FirstName:  c.FirstName,
			MiddleName: c.MiddleName,
			LastName:   c.LastName,
		})
	}
	return out, nil
}
