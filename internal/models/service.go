package models

// UnknownAddress is the display fallback when a record carries no usable
// address tags.
const UnknownAddress = "Address not available"

// ServiceRecord describes a single repair-capable business returned by a
// search. Records are built once by the orchestrator and not modified
// afterwards; Distance is always derived from DistanceKm, never sourced
// independently.
type ServiceRecord struct {
	ID         string   `json:"id"`              // Stable identifier derived from the backend element id.
	Name       string   `json:"name"`            // Display name, always non-empty.
	Address    string   `json:"address"`         // Display address, UnknownAddress when unresolved.
	Location   GeoPoint `json:"location"`        // Resolved coordinate of the business.
	DistanceKm float64  `json:"distance_km"`     // Great-circle distance from the search point, km.
	Distance   string   `json:"distance"`        // Human-readable label derived from DistanceKm.
	Type       string   `json:"type"`            // Primary backend tag, or "repair" when untyped.
	Phone      string   `json:"phone,omitempty"` // Contact phone when the backend carries one.
}

// SearchQuery holds the parameters for one nearby-service search. It is
// used as cache-key input and filter input only, never persisted.
type SearchQuery struct {
	Point    GeoPoint // Center of the search.
	Category string   // Optional user-facing category; empty or "all" disables category filtering.
	Query    string   // Optional free-text filter.
	RadiusKm float64  // Search radius in km; clamped to [1, 40] by the orchestrator.
}

// DefaultRadiusKm is applied when a caller does not specify a radius.
const DefaultRadiusKm = 20.0
