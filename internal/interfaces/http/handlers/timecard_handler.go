package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/interfaces/http/response"
	"timecard.backend/internal/usecases"
)

type timecardService interface {
	ClockIn(ctx context.Context, requestor entities.Requestor, input *entities.ClockInInput) (uuid.UUID, error)
	VerifyClockIn(ctx context.Context, requestor entities.Requestor, input *entities.VerifyClockInInput) error
	ClockOut(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error
	Update(ctx context.Context, requestor entities.Requestor, input *entities.UpdateTimecardInput) error
	Delete(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error
	List(ctx context.Context, requestor entities.Requestor, filter entities.TimecardListFilter) (*entities.Page[*entities.TimecardView], error)
	Pending(ctx context.Context, requestor entities.Requestor) ([]*entities.TimecardView, error)
	GetActive(ctx context.Context, requestor entities.Requestor) ([]*entities.TimecardView, error)
}

type TimecardHandler struct {
	service timecardService
}

func NewTimecardHandler(service *usecases.TimecardUsecase) *TimecardHandler {
	return &TimecardHandler{service: service}
}

// ClockIn starts an unverified shift and texts a code to the client.
// POST /api/v1/timecards/clock-in
func (h *TimecardHandler) ClockIn(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.ClockInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	id, err := h.service.ClockIn(c.Request.Context(), r, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// VerifyClockIn activates the requestor's shift with the client's code.
// POST /api/v1/timecards/:id/verify
func (h *TimecardHandler) VerifyClockIn(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.VerifyClockInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	input.TimecardID = id

	if err := h.service.VerifyClockIn(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Clock-in verified"})
}

// ClockOut ends the requestor's shift.
// POST /api/v1/timecards/:id/clock-out
func (h *TimecardHandler) ClockOut(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.ClockOut(c.Request.Context(), r, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Clocked out"})
}

// Update corrects shift boundaries.
// PUT /api/v1/timecards/:id
func (h *TimecardHandler) Update(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateTimecardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	input.ID = id

	if err := h.service.Update(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Timecard updated"})
}

// DELETE /api/v1/timecards/:id
func (h *TimecardHandler) Delete(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), r, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns timecards between two days.
// GET /api/v1/timecards?start=2024-05-01&end=2024-05-31&page=1&perPage=10
func (h *TimecardHandler) List(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rng, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	params, err := pagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), r, entities.TimecardListFilter{
		DateRange: rng,
		Page:      params.Page,
		PerPage:   params.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GET /api/v1/timecards/pending
func (h *TimecardHandler) Pending(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.Pending(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"timecards": items})
}

// GET /api/v1/timecards/active
func (h *TimecardHandler) Active(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.GetActive(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"timecards": items})
}
