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

type userFixture struct {
	users       *MockUserRepository
	geopoints   *MockGeopointRepository
	settings    *MockUserSettingsRepository
	identities  *MockIdentityRepository
	assignments *MockAssignmentRepository
	timecards   *MockTimecardRepository
	uow         *MockUnitOfWork
	uc          *usecases.UserUsecase
	admin       entities.Requestor
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:       new(MockUserRepository),
		geopoints:   new(MockGeopointRepository),
		settings:    new(MockUserSettingsRepository),
		identities:  new(MockIdentityRepository),
		assignments: new(MockAssignmentRepository),
		timecards:   new(MockTimecardRepository),
		uow:         new(MockUnitOfWork),
		admin:       entities.Requestor{ID: uuid.New(), Role: entities.UserRoleAdmin},
	}
	f.uc = usecases.NewUserUsecase(f.users, f.geopoints, f.settings, f.identities, f.assignments, f.timecards, f.uow)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	return f
}

func geopointInput() *entities.GeopointInput {
	lat, lng := 40.7, -74.0
	return &entities.GeopointInput{ID: "place-1", Latitude: &lat, Longitude: &lng, FormattedAddress: "1 Main St"}
}

func TestUserUsecase_List(t *testing.T) {
	f := newUserFixture()
	users := []*entities.CompleteUser{{User: entities.User{ID: uuid.New(), LastName: "Adams"}}}
	f.users.On("ListByRole", mock.Anything, entities.UserRoleClient, f.admin.ID, 10, 10).Return(users, nil)
	f.users.On("ListByRole", mock.Anything, entities.UserRoleClient, f.admin.ID, 20, 1).Return([]*entities.CompleteUser{}, nil)

	page, err := f.uc.List(context.Background(), f.admin, entities.UserListFilter{Role: entities.UserRoleClient, Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, users, page.List)
	assert.False(t, page.HasNextPage)

	_, err = f.uc.List(context.Background(), f.admin, entities.UserListFilter{Role: "boss"})
	assert.Equal(t, domainerrors.CodeBadRequest, errCode(err))

	_, err = f.uc.List(context.Background(), entities.Requestor{ID: uuid.New(), Role: entities.UserRoleEmployee}, entities.UserListFilter{Role: entities.UserRoleClient})
	assert.Equal(t, domainerrors.CodePreconditionFailed, errCode(err))
}

func TestUserUsecase_GetByIDsAndAll(t *testing.T) {
	f := newUserFixture()
	ids := []uuid.UUID{uuid.New()}
	f.users.On("GetCompleteByIDs", mock.Anything, ids).Return([]*entities.CompleteUser{{User: entities.User{ID: ids[0]}}}, nil)
	f.users.On("ListAllExcept", mock.Anything, f.admin.ID).Return([]*entities.CompleteUser{}, nil)

	got, err := f.uc.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = f.uc.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	all, err := f.uc.GetAll(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserUsecase_Create(t *testing.T) {
	f := newUserFixture()
	input := &entities.CreateUserInput{
		FirstName:   "Carol",
		LastName:    "Client",
		Email:       "carol@example.com",
		PhoneNumber: "5551234567",
		Role:        entities.UserRoleClient,
		Geopoint:    geopointInput(),
	}
	f.users.On("ContactTaken", mock.Anything, "carol@example.com", "5551234567", mock.Anything).Return(false, nil)
	f.geopoints.On("Upsert", mock.Anything, mock.MatchedBy(func(g *entities.Geopoint) bool { return g.ID == "place-1" })).Return(nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.settings.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.UserSettings) bool { return !s.IsDarkMode })).Return(nil)
	f.identities.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := f.uc.Create(context.Background(), f.admin, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "place-1", user.GeopointID)
	assert.True(t, user.IsActive)
	f.identities.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(i *entities.Identity) bool {
		return i.ID == user.ID && i.Email == "carol@example.com" && !i.IsConfirmed()
	}))
}

func TestUserUsecase_Create_DuplicateContact(t *testing.T) {
	f := newUserFixture()
	f.users.On("ContactTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.uc.Create(context.Background(), f.admin, &entities.CreateUserInput{
		Email: "dup@example.com", PhoneNumber: "5551234567", Role: entities.UserRoleClient, Geopoint: geopointInput(),
	})
	assert.Equal(t, domainerrors.CodeConflict, errCode(err))
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUsecase_UpdateClient(t *testing.T) {
	f := newUserFixture()
	client := &entities.User{ID: uuid.New(), FirstName: "Carol", Email: "carol@example.com", PhoneNumber: "5551234567", Role: entities.UserRoleClient, GeopointID: "old"}
	employee := &entities.User{ID: uuid.New(), Role: entities.UserRoleEmployee}
	f.users.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	f.users.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)

	name := "Caroline"
	phone := "5559999999"
	f.users.On("ContactTaken", mock.Anything, "carol@example.com", phone, client.ID).Return(false, nil)
	f.geopoints.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.FirstName == name && u.PhoneNumber == phone && u.GeopointID == "place-1"
	})).Return(nil)

	err := f.uc.UpdateClient(context.Background(), f.admin, &entities.UpdateUserInput{ID: client.ID, FirstName: &name, PhoneNumber: &phone, Geopoint: geopointInput()})
	require.NoError(t, err)

	err = f.uc.UpdateClient(context.Background(), f.admin, &entities.UpdateUserInput{ID: employee.ID, FirstName: &name})
	assert.Equal(t, domainerrors.CodeNotFound, errCode(err))
}

func TestUserUsecase_UpdateClient_ContactTaken(t *testing.T) {
	f := newUserFixture()
	client := &entities.User{ID: uuid.New(), Email: "carol@example.com", PhoneNumber: "5551234567", Role: entities.UserRoleClient}
	f.users.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	email := "taken@example.com"
	f.users.On("ContactTaken", mock.Anything, email, client.PhoneNumber, client.ID).Return(true, nil)

	err := f.uc.UpdateClient(context.Background(), f.admin, &entities.UpdateUserInput{ID: client.ID, Email: &email})
	assert.Equal(t, domainerrors.CodeConflict, errCode(err))
}

func TestUserUsecase_UpdateSelf_IgnoresEmail(t *testing.T) {
	f := newUserFixture()
	me := &entities.User{ID: uuid.New(), FirstName: "Eve", Email: "eve@example.com", PhoneNumber: "5550000000", Role: entities.UserRoleEmployee}
	f.users.On("GetByID", mock.Anything, me.ID).Return(me, nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(nil)

	email := "other@example.com"
	last := "Evans"
	err := f.uc.UpdateSelf(context.Background(), entities.Requestor{ID: me.ID, Role: entities.UserRoleEmployee},
		&entities.UpdateUserInput{ID: uuid.New(), Email: &email, LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "eve@example.com", me.Email)
	assert.Equal(t, "Evans", me.LastName)
	f.users.AssertNotCalled(t, "ContactTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserUsecase_UpdateEmployee(t *testing.T) {
	f := newUserFixture()
	employee := &entities.User{ID: uuid.New(), Role: entities.UserRoleEmployee}
	f.users.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	f.users.On("SetActive", mock.Anything, employee.ID, false).Return(nil)

	require.NoError(t, f.uc.UpdateEmployee(context.Background(), f.admin, &entities.UpdateEmployeeInput{ID: employee.ID, IsActive: false}))
	f.users.AssertCalled(t, "SetActive", mock.Anything, employee.ID, false)
}

func TestUserUsecase_Delete_Cascades(t *testing.T) {
	f := newUserFixture()
	employee := &entities.User{ID: uuid.New(), Role: entities.UserRoleEmployee}
	a1 := &entities.Assignment{ID: uuid.New(), EmployeeID: employee.ID, ClientID: uuid.New()}
	a2 := &entities.Assignment{ID: uuid.New(), EmployeeID: employee.ID, ClientID: uuid.New()}

	f.users.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	f.assignments.On("ListByUser", mock.Anything, entities.UserRoleEmployee, employee.ID).Return([]*entities.Assignment{a1, a2}, nil)
	f.timecards.On("DeleteByAssignmentIDs", mock.Anything, []uuid.UUID{a1.ID, a2.ID}).Return(nil)
	f.assignments.On("DeleteByIDs", mock.Anything, []uuid.UUID{a1.ID, a2.ID}).Return(nil)
	f.settings.On("Delete", mock.Anything, employee.ID).Return(nil)
	f.users.On("Delete", mock.Anything, employee.ID).Return(nil)
	f.identities.On("Delete", mock.Anything, employee.ID).Return(domainerrors.ErrNotFound)

	require.NoError(t, f.uc.Delete(context.Background(), f.admin, []uuid.UUID{employee.ID}))
	f.timecards.AssertExpectations(t)
	f.assignments.AssertExpectations(t)
	f.uow.AssertNumberOfCalls(t, "Do", 1)
}

func TestUserUsecase_Delete_Failures(t *testing.T) {
	f := newUserFixture()

	err := f.uc.Delete(context.Background(), f.admin, []uuid.UUID{f.admin.ID})
	assert.Equal(t, domainerrors.CodeBadRequest, errCode(err))

	err = f.uc.Delete(context.Background(), f.admin, nil)
	assert.Equal(t, domainerrors.CodeBadRequest, errCode(err))

	missing := uuid.New()
	f.users.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound)
	err = f.uc.Delete(context.Background(), f.admin, []uuid.UUID{missing})
	assert.Equal(t, domainerrors.CodeNotFound, errCode(err))

	client := &entities.User{ID: uuid.New(), Role: entities.UserRoleClient}
	f.users.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	f.assignments.On("ListByUser", mock.Anything, entities.UserRoleClient, client.ID).Return(nil, errors.New("db down"))
	err = f.uc.Delete(context.Background(), f.admin, []uuid.UUID{client.ID})
	assert.Equal(t, domainerrors.CodeInternalError, errCode(err))
}
