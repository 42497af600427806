package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context) // Return mocked context
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetCompleteByID(ctx context.Context, id uuid.UUID) (*entities.CompleteUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompleteUser), args.Error(1)
}

func (m *MockUserRepository) GetCompleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.CompleteUser, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CompleteUser), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role entities.UserRole, excludeID uuid.UUID, offset, limit int) ([]*entities.CompleteUser, error) {
	args := m.Called(ctx, role, excludeID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CompleteUser), args.Error(1)
}

func (m *MockUserRepository) ListAllExcept(ctx context.Context, excludeID uuid.UUID) ([]*entities.CompleteUser, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CompleteUser), args.Error(1)
}

func (m *MockUserRepository) ListAllByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ContactTaken(ctx context.Context, email, phone string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, phone, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock GeopointRepository
type MockGeopointRepository struct {
	mock.Mock
}

func (m *MockGeopointRepository) Upsert(ctx context.Context, geopoint *entities.Geopoint) error {
	return m.Called(ctx, geopoint).Error(0)
}

func (m *MockGeopointRepository) GetByID(ctx context.Context, id string) (*entities.Geopoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Geopoint), args.Error(1)
}

func (m *MockGeopointRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Geopoint, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Geopoint), args.Error(1)
}

// Mock UserSettingsRepository
type MockUserSettingsRepository struct {
	mock.Mock
}

func (m *MockUserSettingsRepository) Create(ctx context.Context, settings *entities.UserSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockUserSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserSettings), args.Error(1)
}

func (m *MockUserSettingsRepository) Update(ctx context.Context, settings *entities.UserSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockUserSettingsRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entities.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*entities.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) Update(ctx context.Context, identity *entities.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIdentityRepository) DeleteUnconfirmed(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// Mock AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Assignment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByUser(ctx context.Context, role entities.UserRole, userID uuid.UUID) ([]*entities.Assignment, error) {
	args := m.Called(ctx, role, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CreateBatch(ctx context.Context, assignments []*entities.Assignment) error {
	return m.Called(ctx, assignments).Error(0)
}

func (m *MockAssignmentRepository) DeletePairs(ctx context.Context, role entities.UserRole, userID uuid.UUID, counterpartIDs []uuid.UUID) error {
	return m.Called(ctx, role, userID, counterpartIDs).Error(0)
}

func (m *MockAssignmentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// Mock TimecardRepository
type MockTimecardRepository struct {
	mock.Mock
}

func (m *MockTimecardRepository) Create(ctx context.Context, timecard *entities.Timecard) error {
	return m.Called(ctx, timecard).Error(0)
}

func (m *MockTimecardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Timecard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Timecard), args.Error(1)
}

func (m *MockTimecardRepository) Update(ctx context.Context, timecard *entities.Timecard) error {
	return m.Called(ctx, timecard).Error(0)
}

func (m *MockTimecardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTimecardRepository) DeleteUnverifiedByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, assignmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimecardRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimecardRepository) DeleteByAssignmentIDs(ctx context.Context, assignmentIDs []uuid.UUID) error {
	return m.Called(ctx, assignmentIDs).Error(0)
}

func (m *MockTimecardRepository) List(ctx context.Context, query entities.TimecardQuery) ([]*entities.Timecard, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Timecard), args.Error(1)
}

func (m *MockTimecardRepository) ListActive(ctx context.Context, assignmentIDs []uuid.UUID) ([]*entities.Timecard, error) {
	args := m.Called(ctx, assignmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Timecard), args.Error(1)
}

func (m *MockTimecardRepository) ListPending(ctx context.Context) ([]*entities.Timecard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Timecard), args.Error(1)
}

// Mock InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Upsert(ctx context.Context, invite *entities.Invite) error {
	return m.Called(ctx, invite).Error(0)
}

func (m *MockInviteRepository) GetByEmail(ctx context.Context, email string) (*entities.Invite, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invite), args.Error(1)
}

func (m *MockInviteRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteRepository) List(ctx context.Context, offset, limit int) ([]*entities.Invite, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Invite), args.Error(1)
}

func (m *MockInviteRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// Mock SMSSender
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, phone, body string) error {
	return m.Called(ctx, phone, body).Error(0)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendInvite(ctx context.Context, email, link string) error {
	return m.Called(ctx, email, link).Error(0)
}

func (m *MockMailer) SendMagicLink(ctx context.Context, email, link string) error {
	return m.Called(ctx, email, link).Error(0)
}

// Mock ClockInLocker
type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.released++
		return nil
	}, nil
}

// Mock AttemptCounter
type MockAttemptCounter struct {
	mock.Mock
}

func (m *MockAttemptCounter) Fail(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptCounter) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Mock TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Issue(ctx context.Context, subject, token string) error {
	return m.Called(ctx, subject, token).Error(0)
}

func (m *MockTokenStore) Consume(ctx context.Context, subject, token string) error {
	return m.Called(ctx, subject, token).Error(0)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return m.Called(ctx, sessionID, data, expiration).Error(0)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
