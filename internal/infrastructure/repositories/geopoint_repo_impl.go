package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/internal/infrastructure/models"
)

// GeopointRepository implements geopoint data operations
type GeopointRepository struct {
	db *gorm.DB
}

// NewGeopointRepository creates a new geopoint repository
func NewGeopointRepository(db *gorm.DB) *GeopointRepository {
	return &GeopointRepository{db: db}
}

// Upsert inserts the geopoint or overwrites the row with the same id
func (r *GeopointRepository) Upsert(ctx context.Context, geopoint *entities.Geopoint) error {
	m := &models.Geopoint{
		ID:               geopoint.ID,
		Latitude:         geopoint.Latitude,
		Longitude:        geopoint.Longitude,
		FormattedAddress: geopoint.FormattedAddress,
		AptNumber:        geopoint.AptNumber.Ptr(),
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "formatted_address", "apt_number"}),
	}).Create(m).Error
}

// GetByID gets a geopoint by id
func (r *GeopointRepository) GetByID(ctx context.Context, id string) (*entities.Geopoint, error) {
	var m models.Geopoint
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toGeopointEntity(&m), nil
}

// GetByIDs gets the geopoints among ids that exist
func (r *GeopointRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Geopoint, error) {
	if len(ids) == 0 {
		return []*entities.Geopoint{}, nil
	}
	var ms []models.Geopoint
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Geopoint, 0, len(ms))
	for i := range ms {
		out = append(out, toGeopointEntity(&ms[i]))
	}
	return out, nil
}

func toGeopointEntity(m *models.Geopoint) *entities.Geopoint {
	return &entities.Geopoint{
		ID:               m.ID,
		Latitude:         m.Latitude,
		Longitude:        m.Longitude,
		FormattedAddress: m.FormattedAddress,
		AptNumber:        null.StringFromPtr(m.AptNumber),
	}
}
