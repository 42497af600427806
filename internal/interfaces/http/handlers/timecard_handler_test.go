package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/pkg/utils"
)

type timecardServiceStub struct {
	clockIn   func(entities.Requestor, *entities.ClockInInput) (uuid.UUID, error)
	verify    func(entities.Requestor, *entities.VerifyClockInInput) error
	clockOut  func(entities.Requestor, uuid.UUID) error
	update    func(entities.Requestor, *entities.UpdateTimecardInput) error
	delete    func(entities.Requestor, uuid.UUID) error
	list      func(entities.Requestor, entities.TimecardListFilter) (*entities.Page[*entities.TimecardView], error)
	pending   func(entities.Requestor) ([]*entities.TimecardView, error)
	getActive func(entities.Requestor) ([]*entities.TimecardView, error)
}

func (s *timecardServiceStub) ClockIn(_ context.Context, r entities.Requestor, in *entities.ClockInInput) (uuid.UUID, error) {
	return s.clockIn(r, in)
}

func (s *timecardServiceStub) VerifyClockIn(_ context.Context, r entities.Requestor, in *entities.VerifyClockInInput) error {
	return s.verify(r, in)
}

func (s *timecardServiceStub) ClockOut(_ context.Context, r entities.Requestor, id uuid.UUID) error {
	return s.clockOut(r, id)
}

func (s *timecardServiceStub) Update(_ context.Context, r entities.Requestor, in *entities.UpdateTimecardInput) error {
	return s.update(r, in)
}

func (s *timecardServiceStub) Delete(_ context.Context, r entities.Requestor, id uuid.UUID) error {
	return s.delete(r, id)
}

func (s *timecardServiceStub) List(_ context.Context, r entities.Requestor, f entities.TimecardListFilter) (*entities.Page[*entities.TimecardView], error) {
	return s.list(r, f)
}

func (s *timecardServiceStub) Pending(_ context.Context, r entities.Requestor) ([]*entities.TimecardView, error) {
	return s.pending(r)
}

func (s *timecardServiceStub) GetActive(_ context.Context, r entities.Requestor) ([]*entities.TimecardView, error) {
	return s.getActive(r)
}

func timecardRouter(stub *timecardServiceStub, auth ...gin.HandlerFunc) *gin.Engine {
	h := &TimecardHandler{service: stub}
	r := newRouter(auth...)
	r.POST("/timecards/clock-in", h.ClockIn)
	r.POST("/timecards/:id/verify", h.VerifyClockIn)
	r.POST("/timecards/:id/clock-out", h.ClockOut)
	r.PUT("/timecards/:id", h.Update)
	r.DELETE("/timecards/:id", h.Delete)
	r.GET("/timecards", h.List)
	r.GET("/timecards/pending", h.Pending)
	r.GET("/timecards/active", h.Active)
	return r
}

func TestTimecardHandler_ClockIn(t *testing.T) {
	assignmentID := uuid.New()
	created := uuid.New()
	stub := &timecardServiceStub{
		clockIn: func(r entities.Requestor, in *entities.ClockInInput) (uuid.UUID, error) {
			assert.Equal(t, employeeID, r.ID)
			assert.Equal(t, assignmentID, in.AssignmentID)
			assert.InDelta(t, 40.7128, *in.Latitude, 1e-9)
			return created, nil
		},
	}
	r := timecardRouter(stub, asUser(employeeID, entities.UserRoleEmployee))

	w := doJSON(t, r, http.MethodPost, "/timecards/clock-in", entities.ClockInInput{
		AssignmentID: assignmentID,
		Latitude:     float(40.7128),
		Longitude:    float(-74.0060),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, created.String(), decode(t, w)["id"])
}

func TestTimecardHandler_ClockIn_Validation(t *testing.T) {
	stub := &timecardServiceStub{}
	r := timecardRouter(stub, asUser(employeeID, entities.UserRoleEmployee))

	w := doJSON(t, r, http.MethodPost, "/timecards/clock-in", map[string]any{"assignmentId": uuid.New()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domainerrors.CodeBadRequest, decode(t, w)["code"])

	w = doJSON(t, r, http.MethodPost, "/timecards/clock-in", map[string]any{
		"assignmentId": uuid.New(), "latitude": 123.0, "longitude": 0.0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimecardHandler_ClockIn_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainerrors.PreconditionFailed("you are too far from the client"), http.StatusPreconditionFailed},
		{domainerrors.Unauthorized("assignment does not belong to you"), http.StatusUnauthorized},
		{domainerrors.Conflict("a clock-in for this assignment is already in progress"), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		stub := &timecardServiceStub{
			clockIn: func(entities.Requestor, *entities.ClockInInput) (uuid.UUID, error) { return uuid.Nil, tc.err },
		}
		r := timecardRouter(stub, asUser(employeeID, entities.UserRoleEmployee))
		w := doJSON(t, r, http.MethodPost, "/timecards/clock-in", entities.ClockInInput{
			AssignmentID: uuid.New(), Latitude: float(1), Longitude: float(1),
		})
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestTimecardHandler_RequiresAuthentication(t *testing.T) {
	r := timecardRouter(&timecardServiceStub{})
	w := doJSON(t, r, http.MethodGet, "/timecards/active", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimecardHandler_VerifyClockIn(t *testing.T) {
	id := uuid.New()
	misses := 0
	stub := &timecardServiceStub{
		verify: func(r entities.Requestor, in *entities.VerifyClockInInput) error {
			assert.Equal(t, employeeID, r.ID)
			assert.Equal(t, id, in.TimecardID)
			if in.Code == "1234" {
				return nil
			}
			misses++
			if misses >= 2 {
				return domainerrors.PreconditionFailed("too many incorrect codes, clock in again")
			}
			return domainerrors.Unauthorized("incorrect verification code, 1 attempts left")
		},
	}
	r := timecardRouter(stub, asUser(employeeID, entities.UserRoleEmployee))
	path := "/timecards/" + id.String() + "/verify"

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, path, map[string]string{"code": "1234"}).Code)
	require.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, path, map[string]string{"code": "9999"}).Code)
	require.Equal(t, http.StatusPreconditionFailed, doJSON(t, r, http.MethodPost, path, map[string]string{"code": "9998"}).Code)
	require.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, path, map[string]string{"code": "12a4"}).Code)
	require.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/timecards/not-a-uuid/verify", map[string]string{"code": "1234"}).Code)
}

func TestTimecardHandler_VerifyClockInRequiresRequestor(t *testing.T) {
	stub := &timecardServiceStub{
		verify: func(entities.Requestor, *entities.VerifyClockInInput) error {
			t.Fatal("service must not be called without a requestor")
			return nil
		},
	}
	r := timecardRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/timecards/"+uuid.New().String()+"/verify", map[string]string{"code": "1234"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimecardHandler_ClockOutUpdateDelete(t *testing.T) {
	id := uuid.New()
	var gotUpdate *entities.UpdateTimecardInput
	stub := &timecardServiceStub{
		clockOut: func(r entities.Requestor, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
		update: func(r entities.Requestor, in *entities.UpdateTimecardInput) error {
			gotUpdate = in
			return nil
		},
		delete: func(r entities.Requestor, got uuid.UUID) error {
			return domainerrors.PreconditionFailed("role \"employee\" may not edit timecards")
		},
	}
	r := timecardRouter(stub, asUser(adminID, entities.UserRoleAdmin))

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/timecards/"+id.String()+"/clock-out", nil).Code)

	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPut, "/timecards/"+id.String(), map[string]any{
		"startedAt": start, "endedAt": start.Add(8 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotUpdate)
	assert.Equal(t, id, gotUpdate.ID)
	assert.True(t, gotUpdate.StartedAt.Equal(start))

	require.Equal(t, http.StatusPreconditionFailed, doJSON(t, r, http.MethodDelete, "/timecards/"+id.String(), nil).Code)
}

func TestTimecardHandler_List(t *testing.T) {
	var got entities.TimecardListFilter
	stub := &timecardServiceStub{
		list: func(r entities.Requestor, f entities.TimecardListFilter) (*entities.Page[*entities.TimecardView], error) {
			got = f
			return &entities.Page[*entities.TimecardView]{List: []*entities.TimecardView{}, HasNextPage: true}, nil
		},
	}
	r := timecardRouter(stub, asUser(adminID, entities.UserRoleAdmin))

	w := doJSON(t, r, http.MethodGet, "/timecards?start=2024-05-01&end=2024-05-31&page=2&perPage=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["hasNextPage"])
	assert.Equal(t, []any{}, body["list"])
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.PerPage)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), got.DateRange.End)

	w = doJSON(t, r, http.MethodGet, "/timecards?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 10, got.PerPage)

	w = doJSON(t, r, http.MethodGet, "/timecards?start=2024-05-01&end=2024-05-31&page=922337203685477580&perPage=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.MaxPage, got.Page)
}

func TestTimecardHandler_List_BadQuery(t *testing.T) {
	r := timecardRouter(&timecardServiceStub{}, asUser(adminID, entities.UserRoleAdmin))
	for _, q := range []string{
		"",
		"?start=2024-05-01",
		"?start=05/01/2024&end=2024-05-31",
		"?start=2024-05-31&end=2024-05-01",
		"?start=2024-05-01&end=2024-05-31&page=0",
		"?start=2024-05-01&end=2024-05-31&perPage=-3",
		"?start=2024-05-01&end=2024-05-31&page=abc",
	} {
		w := doJSON(t, r, http.MethodGet, "/timecards"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestTimecardHandler_PendingAndActive(t *testing.T) {
	view := &entities.TimecardView{ID: uuid.New(), IsActive: true}
	stub := &timecardServiceStub{
		pending: func(entities.Requestor) ([]*entities.TimecardView, error) {
			return []*entities.TimecardView{view}, nil
		},
		getActive: func(entities.Requestor) ([]*entities.TimecardView, error) {
			return nil, errors.New("boom")
		},
	}
	r := timecardRouter(stub, asUser(adminID, entities.UserRoleAdmin))

	w := doJSON(t, r, http.MethodGet, "/timecards/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["timecards"], 1)

	w = doJSON(t, r, http.MethodGet, "/timecards/active", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
