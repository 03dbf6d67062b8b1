package models

// GeoPoint represents a geographical point in WGS84 decimal degrees.
type GeoPoint struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}
