package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/interfaces/http/middleware"
	"timecard.backend/internal/interfaces/http/response"
	"timecard.backend/internal/usecases"
)

type authService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, requestor entities.Requestor) (*entities.MeResponse, error)
	VerifyAdmin(ctx context.Context, requestor entities.Requestor) bool
	GetMagicLink(ctx context.Context, email string) error
	LoginWithMagicLink(ctx context.Context, input *entities.MagicLinkLoginInput) (*entities.AuthResponse, error)
	ConfirmEmail(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, requestor entities.Requestor, input *entities.ChangePasswordInput) error
	DeleteUser(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles password login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// RefreshToken exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Logout drops the caller's server-side session, if any
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString(middleware.SessionIDKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	me, err := h.service.Me(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

// VerifyAdmin backs the admin route guard of the web app
// GET /api/v1/auth/verify-admin
func (h *AuthHandler) VerifyAdmin(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"isAdmin": h.service.VerifyAdmin(c.Request.Context(), r)})
}

// POST /api/v1/auth/magic-link
func (h *AuthHandler) MagicLink(c *gin.Context) {
	var input entities.MagicLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.GetMagicLink(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Login link sent"})
}

// POST /api/v1/auth/magic-link/login
func (h *AuthHandler) MagicLinkLogin(c *gin.Context) {
	var input entities.MagicLinkLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.LoginWithMagicLink(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// POST /api/v1/auth/confirm-email
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var input entities.ConfirmEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.ConfirmEmail(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Email confirmed"})
}

// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), r, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// DELETE /api/v1/auth/users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
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

	if err := h.service.DeleteUser(c.Request.Context(), r, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
