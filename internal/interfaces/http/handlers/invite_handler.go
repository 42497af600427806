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

type inviteService interface {
	Invite(ctx context.Context, requestor entities.Requestor, input *entities.InviteInput) (*entities.Invite, error)
	SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.SignUpResult, error)
	DeleteInvites(ctx context.Context, requestor entities.Requestor, ids []uuid.UUID) error
	ListInvites(ctx context.Context, requestor entities.Requestor, page, perPage int) (*entities.Page[*entities.Invite], error)
	VerifyToken(ctx context.Context, token string) (bool, error)
}

type InviteHandler struct {
	service inviteService
}

func NewInviteHandler(service *usecases.InviteUsecase) *InviteHandler {
	return &InviteHandler{service: service}
}

// Invite emails a signup link.
// POST /api/v1/auth/invite
func (h *InviteHandler) Invite(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invite, err := h.service.Invite(c.Request.Context(), r, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":    invite.ID,
		"email": invite.Email,
		"role":  invite.Role,
	})
}

// SignUp redeems an invite.
// POST /api/v1/auth/signup
func (h *InviteHandler) SignUp(c *gin.Context) {
	var input entities.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.SignUp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// DELETE /api/v1/auth/invites
func (h *InviteHandler) Delete(c *gin.Context) {
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

	if err := h.service.DeleteInvites(c.Request.Context(), r, input.IDs); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/invites?page=1&perPage=10
func (h *InviteHandler) List(c *gin.Context) {
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

	page, err := h.service.ListInvites(c.Request.Context(), r, params.Page, params.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Verify tells the signup page whether a token is live.
// GET /api/v1/invites/verify?token=...
func (h *InviteHandler) Verify(c *gin.Context) {
	ok, err := h.service.VerifyToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": ok})
}
