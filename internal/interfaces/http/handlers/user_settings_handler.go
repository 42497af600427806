package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/interfaces/http/response"
	"timecard.backend/internal/usecases"
)

type userSettingsService interface {
	Get(ctx context.Context, requestor entities.Requestor) ([]*entities.UserSettings, error)
	Update(ctx context.Context, requestor entities.Requestor, settings []*entities.UserSettings) error
}

type UserSettingsHandler struct {
	service userSettingsService
}

func NewUserSettingsHandler(service *usecases.UserSettingsUsecase) *UserSettingsHandler {
	return &UserSettingsHandler{service: service}
}

// GET /api/v1/user-settings
func (h *UserSettingsHandler) Get(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	settings, err := h.service.Get(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userSettings": settings})
}

// PUT /api/v1/user-settings
func (h *UserSettingsHandler) Update(c *gin.Context) {
	r, err := requestor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input struct {
		UserSettings []*entities.UserSettings `json:"userSettings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.Update(c.Request.Context(), r, input.UserSettings); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Settings updated"})
}
