package usecases

import "math"

// Geofence approximates distance on a flat plane: the Euclidean distance in
// degrees scaled by a fixed miles-per-degree factor. It is accurate enough
// for the sub-mile radius it guards.
type Geofence struct {
	MilesPerDegree   float64
	MaxDistanceMiles float64
}

// DistanceMiles returns the scaled planar distance between two coordinates
func (g Geofence) DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lat1-lat2, lng1-lng2) * g.MilesPerDegree
}

// Within reports whether the two coordinates are close enough
func (g Geofence) Within(lat1, lng1, lat2, lng2 float64) bool {
	return g.DistanceMiles(lat1, lng1, lat2, lng2) <= g.MaxDistanceMiles
}
