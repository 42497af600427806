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

type assignmentService interface {
	GetAssigned(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) ([]*entities.AssignmentView, error)
	GetAvailable(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) ([]*entities.AssignmentUser, error)
	GetByUserID(ctx context.Context, requestor entities.Requestor, userID uuid.UUID) (*entities.UserAssignments, error)
	Update(ctx context.Context, requestor entities.Requestor, input *entities.UpdateAssignmentsInput) error
}

type AssignmentHandler struct {
	service assignmentService
}

func NewAssignmentHandler(service *usecases.AssignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// GET /api/v1/assignments/assigned/:userId
func (h *AssignmentHandler) GetAssigned(c *gin.Context) {
	r, userID, ok := h.target(c)
	if !ok {
		return
	}
	items, err := h.service.GetAssigned(c.Request.Context(), r, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignments": items})
}

// GET /api/v1/assignments/available/:userId
func (h *AssignmentHandler) GetAvailable(c *gin.Context) {
	r, userID, ok := h.target(c)
	if !ok {
		return
	}
	items, err := h.service.GetAvailable(c.Request.Context(), r, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": items})
}

// GetByUserID returns assigned and assignable counterparts in one response.
// GET /api/v1/assignments/user/:userId
func (h *AssignmentHandler) GetByUserID(c *gin.Context) {
	r, userID, ok := h.target(c)
	if !ok {
		return
	}
	result, err := h.service.GetByUserID(c.Request.Context(), r, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Update adds and removes pairings for one user.
// PUT /api/v1/assignments
func (h *AssignmentHandler) Update(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateAssignmentsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.Update(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Assignments updated"})
}

func (h *AssignmentHandler) target(c *gin.Context) (entities.Requestor, uuid.UUID, bool) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return entities.Requestor{}, uuid.Nil, false
	}
	userID, err := uuidParam(c, "userId")
	if err != nil {
		response.Error(c, err)
		return entities.Requestor{}, uuid.Nil, false
	}
	return r, userID, true
}
