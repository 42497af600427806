package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
)

func newTimecard(assignmentID uuid.UUID, start time.Time, end *time.Time, active bool, code *string) *entities.Timecard {
	return &entities.Timecard{
		ID:               uuid.New(),
		AssignmentID:     assignmentID,
		StartedAt:        start,
		EndedAt:          null.TimeFromPtr(end),
		IsActive:         active,
		VerificationCode: null.StringFromPtr(code),
		CreatedAt:        start,
	}
}

func TestTimecardRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createSchema(t, db)
	repo := NewTimecardRepository(db)
	ctx := context.Background()

	code := "1234"
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tc := newTimecard(uuid.New(), start, nil, false, &code)
	require.NoError(t, repo.Create(ctx, tc))

	got, err := repo.GetByID(ctx, tc.ID)
	require.NoError(t, err)
	require.False(t, got.IsVerified())
	require.Equal(t, "1234", got.VerificationCode.String)

	got.VerificationCode = null.String{}
	got.IsActive = true
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, tc.ID)
	require.NoError(t, err)
	require.True(t, got.IsVerified())
	require.True(t, got.IsActive)

	require.NoError(t, repo.Delete(ctx, tc.ID))
	require.ErrorIs(t, repo.Delete(ctx, tc.ID), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, tc), domainerrors.ErrNotFound)
	_, err = repo.GetByID(ctx, tc.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTimecardRepository_UnverifiedCleanup(t *testing.T) {
	db := newTestDB(t)
	createSchema(t, db)
	repo := NewTimecardRepository(db)
	ctx := context.Background()

	assignment := uuid.New()
	code := "4321"
	old := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	fresh := time.Now().UTC().Truncate(time.Second)

	pendingOld := newTimecard(assignment, old, nil, false, &code)
	pendingFresh := newTimecard(uuid.New(), fresh, nil, false, &code)
	verified := newTimecard(assignment, old, nil, true, nil)
	for _, tc := range []*entities.Timecard{pendingOld, pendingFresh, verified} {
		require.NoError(t, repo.Create(ctx, tc))
	}

	n, err := repo.DeleteUnverifiedBefore(ctx, time.Now().UTC().Add(-30*time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = repo.DeleteUnverifiedByAssignment(ctx, pendingFresh.AssignmentID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, verified.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByAssignmentIDs(ctx, []uuid.UUID{assignment}))
	_, err = repo.GetByID(ctx, verified.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTimecardRepository_Listings(t *testing.T) {
	db := newTestDB(t)
	createSchema(t, db)
	repo := NewTimecardRepository(db)
	ctx := context.Background()

	mine, other := uuid.New(), uuid.New()
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	ptr := func(t time.Time) *time.Time { return &t }
	code := "9999"

	early := newTimecard(mine, day(1, 9), ptr(day(1, 17)), false, nil)
	late := newTimecard(mine, day(2, 9), ptr(day(2, 17)), false, nil)
	foreign := newTimecard(other, day(2, 8), ptr(day(2, 12)), false, nil)
	outside := newTimecard(mine, day(10, 9), ptr(day(10, 17)), false, nil)
	running := newTimecard(mine, day(3, 9), nil, true, nil)
	unverified := newTimecard(other, day(3, 9), nil, false, &code)
	for _, tc := range []*entities.Timecard{early, late, foreign, outside, running, unverified} {
		require.NoError(t, repo.Create(ctx, tc))
	}

	from, to := entities.DateRange{Start: day(1, 12), End: day(3, 0)}.Bounds()
	all, err := repo.List(ctx, entities.TimecardQuery{From: from, To: to, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, late.ID, all[0].ID)
	require.Equal(t, foreign.ID, all[1].ID)
	require.Equal(t, early.ID, all[2].ID)

	own, err := repo.List(ctx, entities.TimecardQuery{From: from, To: to, AssignmentIDs: []uuid.UUID{mine}, Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, early.ID, own[0].ID)

	none, err := repo.List(ctx, entities.TimecardQuery{From: from, To: to, AssignmentIDs: []uuid.UUID{}, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, none)

	active, err := repo.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, running.ID, active[0].ID)

	active, err = repo.ListActive(ctx, []uuid.UUID{other})
	require.NoError(t, err)
	require.Empty(t, active)

	active, err = repo.ListActive(ctx, []uuid.UUID{})
	require.NoError(t, err)
	require.Empty(t, active)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, running.ID, pending[0].ID)
}
