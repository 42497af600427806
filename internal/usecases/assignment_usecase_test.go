package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/usecases"
)

type assignmentFixture struct {
	assignments *MockAssignmentRepository
	users       *MockUserRepository
	uow         *MockUnitOfWork
	uc          *usecases.AssignmentUsecase

	admin    entities.Requestor
	employee *entities.User
	clientA  *entities.User
	clientB  *entities.User
}

func newAssignmentFixture() *assignmentFixture {
	f := &assignmentFixture{
		assignments: new(MockAssignmentRepository),
		users:       new(MockUserRepository),
		uow:         new(MockUnitOfWork),
		admin:       entities.Requestor{ID: uuid.New(), Role: entities.UserRoleAdmin},
		employee:    &entities.User{ID: uuid.New(), FirstName: "Eve", LastName: "Employee", Role: entities.UserRoleEmployee},
		clientA:     &entities.User{ID: uuid.New(), FirstName: "Ann", LastName: "Adams", Role: entities.UserRoleClient},
		clientB:     &entities.User{ID: uuid.New(), FirstName: "Bob", LastName: "Baker", Role: entities.UserRoleClient},
	}
	f.uc = usecases.NewAssignmentUsecase(f.assignments, f.users, f.uow)
	return f
}

func complete(u *entities.User) *entities.CompleteUser {
	return &entities.CompleteUser{User: *u, Geopoint: &entities.Geopoint{ID: "place-" + u.FirstName}}
}

func TestAssignmentUsecase_GetAssigned(t *testing.T) {
	f := newAssignmentFixture()
	a := &entities.Assignment{ID: uuid.New(), EmployeeID: f.employee.ID, ClientID: f.clientA.ID}
	f.users.On("GetByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.assignments.On("ListByUser", mock.Anything, entities.UserRoleEmployee, f.employee.ID).Return([]*entities.Assignment{a}, nil)
	f.users.On("GetCompleteByIDs", mock.Anything, []uuid.UUID{f.employee.ID, f.clientA.ID}).
		Return([]*entities.CompleteUser{complete(f.clientA), complete(f.employee)}, nil)

	views, err := f.uc.GetAssigned(context.Background(), f.admin, f.employee.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, a.ID, views[0].ID)
	assert.Equal(t, "Ann", views[0].Client.FirstName)
	assert.Equal(t, "place-Ann", views[0].Client.Geopoint.ID)
	assert.Equal(t, "Eve", views[0].Employee.FirstName)
}

func TestAssignmentUsecase_GetAssigned_Preconditions(t *testing.T) {
	f := newAssignmentFixture()

	_, err := f.uc.GetAssigned(context.Background(), entities.Requestor{ID: uuid.New(), Role: entities.UserRoleClient}, f.employee.ID)
	assert.Equal(t, domainerrors.CodePreconditionFailed, errCode(err))

	missing := uuid.New()
	f.users.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound)
	_, err = f.uc.GetAssigned(context.Background(), f.admin, missing)
	assert.Equal(t, domainerrors.CodeNotFound, errCode(err))

	adminUser := &entities.User{ID: uuid.New(), Role: entities.UserRoleAdmin}
	f.users.On("GetByID", mock.Anything, adminUser.ID).Return(adminUser, nil)
	views, err := f.uc.GetAssigned(context.Background(), f.admin, adminUser.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
	f.assignments.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignmentUsecase_GetByUserID_SplitsAssignedAndAssignable(t *testing.T) {
	f := newAssignmentFixture()
	a := &entities.Assignment{ID: uuid.New(), EmployeeID: f.employee.ID, ClientID: f.clientA.ID}
	f.users.On("GetByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.assignments.On("ListByUser", mock.Anything, entities.UserRoleEmployee, f.employee.ID).Return([]*entities.Assignment{a}, nil)
	f.users.On("GetCompleteByIDs", mock.Anything, mock.Anything).Return([]*entities.CompleteUser{complete(f.clientA), complete(f.employee)}, nil)
	f.users.On("ListAllByRole", mock.Anything, entities.UserRoleClient).Return([]*entities.User{f.clientA, f.clientB}, nil)

	result, err := f.uc.GetByUserID(context.Background(), f.admin, f.employee.ID)
	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	require.Len(t, result.Assignable, 1)
	assert.Equal(t, f.clientB.ID, result.Assignable[0].ID)

	available, err := f.uc.GetAvailable(context.Background(), f.admin, f.employee.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Bob", available[0].FirstName)
}

func TestAssignmentUsecase_Update(t *testing.T) {
	f := newAssignmentFixture()
	f.users.On("GetByID", mock.Anything, f.clientA.ID).Return(f.clientA, nil)
	f.users.On("GetByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	removed := []uuid.UUID{uuid.New()}
	f.assignments.On("DeletePairs", mock.Anything, entities.UserRoleClient, f.clientA.ID, removed).Return(nil)

	var batch []*entities.Assignment
	f.assignments.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { batch = args.Get(1).([]*entities.Assignment) }).
		Return(nil)

	err := f.uc.Update(context.Background(), f.admin, &entities.UpdateAssignmentsInput{
		ID:      f.clientA.ID,
		Added:   []uuid.UUID{f.employee.ID},
		Removed: removed,
	})
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, f.employee.ID, batch[0].EmployeeID)
	assert.Equal(t, f.clientA.ID, batch[0].ClientID)
	f.uow.AssertNumberOfCalls(t, "Do", 1)
}

func TestAssignmentUsecase_Update_Failures(t *testing.T) {
	f := newAssignmentFixture()
	f.users.On("GetByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.users.On("GetByID", mock.Anything, f.clientA.ID).Return(f.clientA, nil)
	f.users.On("GetByID", mock.Anything, f.clientB.ID).Return(f.clientB, nil)

	err := f.uc.Update(context.Background(), entities.Requestor{ID: f.employee.ID, Role: entities.UserRoleEmployee},
		&entities.UpdateAssignmentsInput{ID: f.employee.ID})
	assert.Equal(t, domainerrors.CodePreconditionFailed, errCode(err))

	// a client cannot be paired with another client
	err = f.uc.Update(context.Background(), f.admin, &entities.UpdateAssignmentsInput{ID: f.clientA.ID, Added: []uuid.UUID{f.clientB.ID}})
	assert.Equal(t, domainerrors.CodeBadRequest, errCode(err))

	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.assignments.On("DeletePairs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.assignments.On("CreateBatch", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()
	err = f.uc.Update(context.Background(), f.admin, &entities.UpdateAssignmentsInput{ID: f.employee.ID, Added: []uuid.UUID{f.clientA.ID}})
	assert.Equal(t, domainerrors.CodeConflict, errCode(err))

	f.assignments.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	err = f.uc.Update(context.Background(), f.admin, &entities.UpdateAssignmentsInput{ID: f.employee.ID, Added: []uuid.UUID{f.clientA.ID}})
	assert.Equal(t, domainerrors.CodeInternalError, errCode(err))
}
