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

type userService interface {
	List(ctx context.Context, requestor entities.Requestor, filter entities.UserListFilter) (*entities.Page[*entities.CompleteUser], error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.CompleteUser, error)
	GetAll(ctx context.Context, requestor entities.Requestor) ([]*entities.CompleteUser, error)
	Create(ctx context.Context, requestor entities.Requestor, input *entities.CreateUserInput) (*entities.CompleteUser, error)
	UpdateClient(ctx context.Context, requestor entities.Requestor, input *entities.UpdateUserInput) error
	UpdateSelf(ctx context.Context, requestor entities.Requestor, input *entities.UpdateUserInput) error
	UpdateEmployee(ctx context.Context, requestor entities.Requestor, input *entities.UpdateEmployeeInput) error
	Delete(ctx context.Context, requestor entities.Requestor, ids []uuid.UUID) error
}

type UserHandler struct {
	service userService
}

func NewUserHandler(service *usecases.UserUsecase) *UserHandler {
	return &UserHandler{service: service}
}

// List returns one page of users of a role.
// GET /api/v1/users?role=employee&page=1&perPage=10
func (h *UserHandler) List(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	params, err := pagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), r, entities.UserListFilter{
		Role:    entities.UserRole(c.Query("role")),
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GET /api/v1/users/all
func (h *UserHandler) GetAll(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	users, err := h.service.GetAll(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetByIDs returns users keyed by id.
// GET /api/v1/users/by-ids?ids=<uuid>,<uuid>
func (h *UserHandler) GetByIDs(c *gin.Context) {
	ids, err := uuidList(c, "ids")
	if err != nil {
		response.Error(c, err)
		return
	}
	users, err := h.service.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	byID := make(map[uuid.UUID]*entities.CompleteUser, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	response.Success(c, http.StatusOK, gin.H{"users": byID})
}

// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.service.Create(c.Request.Context(), r, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// UpdateClient edits a client's contact details.
// PUT /api/v1/users/client
func (h *UserHandler) UpdateClient(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if input.ID == uuid.Nil {
		response.Error(c, domainerrors.BadRequest("id is required"))
		return
	}

	if err := h.service.UpdateClient(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User updated"})
}

// PUT /api/v1/users/self
func (h *UserHandler) UpdateSelf(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.UpdateSelf(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Profile updated"})
}

// SetActive toggles whether an employee may sign in.
// PATCH /api/v1/users/:id/active
func (h *UserHandler) SetActive(c *gin.Context) {
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
	var input entities.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	input.ID = id

	if err := h.service.UpdateEmployee(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Employee updated"})
}

// DELETE /api/v1/users
func (h *UserHandler) Delete(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input idsBody
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.Delete(c.Request.Context(), r, input.IDs); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
