package overpass

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// Element is a single raw record from the geodata backend: an identifier,
// an optional coordinate (directly or via a computed center) and a
// free-form tag mapping. Elements are transient; they are consumed entirely
// during one search and never stored.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Center is the representative coordinate the backend computes for way and
// relation geometries.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// overpassResponse is the envelope of a successful backend reply.
type overpassResponse struct {
	Elements []Element `json:"elements"`
}

// ParseElements decodes a raw backend payload into its elements.
func ParseElements(body []byte) ([]Element, error) {
	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	return resp.Elements, nil
}

// Coordinate resolves the element's location, preferring a direct lat/lon
// pair and falling back to the computed center. The second return value is
// false when neither is present.
func (e Element) Coordinate() (models.GeoPoint, bool) {
	if e.Lat != nil && e.Lon != nil {
		return models.GeoPoint{Latitude: *e.Lat, Longitude: *e.Lon}, true
	}
	if e.Center != nil {
		return models.GeoPoint{Latitude: e.Center.Lat, Longitude: e.Center.Lon}, true
	}

	return models.GeoPoint{}, false
}

// Name returns the element's display name tag, empty when unnamed.
func (e Element) Name() string {
	return e.Tags["name"]
}

// PrimaryType returns the first present of the craft, amenity and shop
// tags, which is the most specific description of what the business does.
func (e Element) PrimaryType() string {
	for _, key := range []string{"craft", "amenity", "shop"} {
		if v := e.Tags[key]; v != "" {
			return v
		}
	}

	return ""
}

// Phone returns the contact phone number, checking the plain and the
// contact-namespaced tag.
func (e Element) Phone() string {
	if v := e.Tags["phone"]; v != "" {
		return v
	}

	return e.Tags["contact:phone"]
}

// Address joins the structured address tags into a display string. It
// returns an empty string when no address tags are present; the caller
// decides the fallback literal.
func (e Element) Address() string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:street", "addr:housenumber", "addr:city"} {
		if v := e.Tags[key]; v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(parts, " ")
}
