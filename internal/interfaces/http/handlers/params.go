package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/interfaces/http/middleware"
	"timecard.backend/pkg/utils"
)

const dateLayout = "2006-01-02"

type idsBody struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

func requestor(c *gin.Context) (entities.Requestor, error) {
	r, ok := middleware.GetRequestor(c)
	if !ok {
		return entities.Requestor{}, domainerrors.Unauthorized("authentication required")
	}
	return r, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.BadRequest("invalid " + name)
	}
	return id, nil
}

// pagination reads page and perPage. Missing values fall back to the defaults,
// explicit values must be positive.
func pagination(c *gin.Context) (utils.PaginationParams, error) {
	page, err := positiveQuery(c, "page", utils.DefaultPage)
	if err != nil {
		return utils.PaginationParams{}, err
	}
	perPage, err := positiveQuery(c, "perPage", utils.DefaultPerPage)
	if err != nil {
		return utils.PaginationParams{}, err
	}
	return utils.GetPaginationParams(page, perPage), nil
}

func positiveQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domainerrors.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}

// uuidList accepts ?ids=a,b and ?ids=a&ids=b
func uuidList(c *gin.Context, name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, domainerrors.BadRequest("invalid id in " + name + ": " + part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func stringList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func dateRange(c *gin.Context) (entities.DateRange, error) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		return entities.DateRange{}, domainerrors.BadRequest("start must be a date (YYYY-MM-DD)")
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		return entities.DateRange{}, domainerrors.BadRequest("end must be a date (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return entities.DateRange{}, domainerrors.BadRequest("end must not be before start")
	}
	return entities.DateRange{Start: start, End: end}, nil
}
