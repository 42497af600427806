package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/internal/interfaces/http/response"
	"timecard.backend/internal/usecases"
)

type geopointService interface {
	Get(ctx context.Context, ids []string) (map[string]*entities.Geopoint, error)
}

type GeopointHandler struct {
	service geopointService
}

func NewGeopointHandler(service *usecases.GeopointUsecase) *GeopointHandler {
	return &GeopointHandler{service: service}
}

// Get returns geopoints keyed by place id.
// GET /api/v1/geopoints?ids=<placeId>,<placeId>
func (h *GeopointHandler) Get(c *gin.Context) {
	geopoints, err := h.service.Get(c.Request.Context(), stringList(c, "ids"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"geopoints": geopoints})
}
