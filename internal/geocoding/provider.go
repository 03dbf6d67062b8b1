package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// Provider is an interface that defines a method for geocoding a free-text
// place name. The Geocode method takes a context and a place string as
// input, and returns the corresponding point and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, place string) (*models.GeoPoint, error)
}

// ErrLocationNotFound is returned when the provider has no result for the
// place. Callers surface it distinctly so "could not find that location"
// is never confused with "no services nearby".
var ErrLocationNotFound = errors.New("location not found")
