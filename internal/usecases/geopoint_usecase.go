package usecases

import (
	"context"

	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
)

// GeopointUsecase looks up stored addresses
type GeopointUsecase struct {
	geopointRepo repositories.GeopointRepository
}

// NewGeopointUsecase creates a new geopoint usecase
func NewGeopointUsecase(geopointRepo repositories.GeopointRepository) *GeopointUsecase {
	return &GeopointUsecase{geopointRepo: geopointRepo}
}

// Get returns the known geopoints among ids keyed by id
func (u *GeopointUsecase) Get(ctx context.Context, ids []string) (map[string]*entities.Geopoint, error) {
	out := make(map[string]*entities.Geopoint, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	geopoints, err := u.geopointRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	for _, g := range geopoints {
		out[g.ID] = g
	}
	return out, nil
}
