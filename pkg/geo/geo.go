// Package geo provides great-circle distance math over WGS-ish latitude and
// longitude pairs. Distances use the haversine formula on a sphere with the
// mean Earth radius; accuracy is well within what radius filtering needs.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// Coordinates is a (latitude, longitude) pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsFinite reports whether both components are finite numbers. Search falls
// back to browse-everything mode when the origin is not finite.
func (c Coordinates) IsFinite() bool {
	return isFinite(c.Lat) && isFinite(c.Lon)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// HaversineKm computes the great-circle distance between two points in
// kilometers:
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	c = 2·atan2(√a, √(1−a))
//	d = R·c
func HaversineKm(from, to Coordinates) float64 {
	dLat := toRadians(to.Lat - from.Lat)
	dLon := toRadians(to.Lon - from.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(toRadians(from.Lat))*math.Cos(toRadians(to.Lat))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
