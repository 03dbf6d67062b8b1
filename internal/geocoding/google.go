package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client
// and logger. The client carries the API key and rate limiting.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode takes a context and a place string as input, and returns the
// geographical coordinates of the provided place using the Google Maps
// Geocoding API. An empty response maps to ErrLocationNotFound.
func (gp *GoogleProvider) Geocode(ctx context.Context, place string) (*models.GeoPoint, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "place", place)

	req := maps.GeocodingRequest{Address: place}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode place: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrLocationNotFound
	}
	coords := geocodeResponse[0].Geometry.Location

	return &models.GeoPoint{Latitude: coords.Lat, Longitude: coords.Lng}, nil
}
