package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleClient struct {
	geocodeFunc func(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(ctx, r)
}

func TestGoogleProvider_Geocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "Bengaluru", r.Address)

				result := maps.GeocodingResult{}
				result.Geometry.Location = maps.LatLng{Lat: 12.9716, Lng: 77.5946}
				return []maps.GeocodingResult{result}, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		point, err := provider.Geocode(ctx, "Bengaluru")

		require.NoError(t, err)
		require.NotNil(t, point)
		assert.InEpsilon(t, 12.9716, point.Latitude, 0.0001)
		assert.InEpsilon(t, 77.5946, point.Longitude, 0.0001)
	})

	t.Run("empty response maps to location not found", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		point, err := provider.Geocode(ctx, "nowhere in particular")

		require.Error(t, err)
		require.Nil(t, point)
		assert.ErrorIs(t, err, geocoding.ErrLocationNotFound)
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		point, err := provider.Geocode(ctx, "some place")

		require.Error(t, err)
		require.Nil(t, point)
		assert.Contains(t, err.Error(), "failed to geocode place")
	})
}
