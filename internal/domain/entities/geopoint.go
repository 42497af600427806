package entities

import "github.com/volatiletech/null/v8"

// Geopoint is a geocoded address. The id is the place identifier returned by
// the geocoding provider, so it is a string rather than a UUID.
type Geopoint struct {
	ID               string      `json:"id"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	FormattedAddress string      `json:"formattedAddress"`
	AptNumber        null.String `json:"aptNumber"`
}

// GeopointInput is the client supplied form of a geopoint
type GeopointInput struct {
	ID               string   `json:"id" binding:"required"`
	Latitude         *float64 `json:"latitude" binding:"required,latitude"`
	Longitude        *float64 `json:"longitude" binding:"required,longitude"`
	FormattedAddress string   `json:"formattedAddress" binding:"required"`
	AptNumber        *string  `json:"aptNumber"`
}

// ToGeopoint converts the input into an entity
func (in *GeopointInput) ToGeopoint() *Geopoint {
	g := &Geopoint{
		ID:               in.ID,
		FormattedAddress: in.FormattedAddress,
		AptNumber:        null.StringFromPtr(in.AptNumber),
	}
	if in.Latitude != nil {
		g.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		g.Longitude = *in.Longitude
	}
	return g
}
