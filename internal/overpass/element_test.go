package overpass_test

import (
	"testing"

	"github.com/UnknownOlympus/beacon/internal/overpass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElements(t *testing.T) {
	t.Run("decodes node and way elements", func(t *testing.T) {
		body := `{
			"elements": [
				{"type":"node","id":101,"lat":37.78,"lon":-122.41,"tags":{"name":"Bike Fixers","shop":"bicycle"}},
				{"type":"way","id":202,"center":{"lat":37.70,"lon":-122.40},"tags":{"name":"Tailor Lane","craft":"tailor"}}
			]
		}`

		elements, err := overpass.ParseElements([]byte(body))

		require.NoError(t, err)
		require.Len(t, elements, 2)
		assert.Equal(t, int64(101), elements[0].ID)
		assert.Equal(t, "Bike Fixers", elements[0].Name())
		assert.Equal(t, "Tailor Lane", elements[1].Name())
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := overpass.ParseElements([]byte("not json"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode overpass response")
	})

	t.Run("empty elements array", func(t *testing.T) {
		elements, err := overpass.ParseElements([]byte(`{"elements":[]}`))

		require.NoError(t, err)
		assert.Empty(t, elements)
	})
}

func TestElement_Coordinate(t *testing.T) {
	lat, lon := 48.42, 35.02

	t.Run("direct coordinate preferred", func(t *testing.T) {
		el := overpass.Element{
			Lat:    &lat,
			Lon:    &lon,
			Center: &overpass.Center{Lat: 1, Lon: 1},
		}

		point, ok := el.Coordinate()

		require.True(t, ok)
		assert.InEpsilon(t, lat, point.Latitude, 1e-9)
		assert.InEpsilon(t, lon, point.Longitude, 1e-9)
	})

	t.Run("center fallback for ways and relations", func(t *testing.T) {
		el := overpass.Element{Center: &overpass.Center{Lat: lat, Lon: lon}}

		point, ok := el.Coordinate()

		require.True(t, ok)
		assert.InEpsilon(t, lat, point.Latitude, 1e-9)
	})

	t.Run("no resolvable coordinate", func(t *testing.T) {
		el := overpass.Element{Lat: &lat}

		_, ok := el.Coordinate()

		assert.False(t, ok)
	})
}

func TestElement_PrimaryType(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{"craft wins over shop", map[string]string{"craft": "electronics_repair", "shop": "electronics"}, "electronics_repair"},
		{"amenity before shop", map[string]string{"amenity": "car_repair", "shop": "car_repair"}, "car_repair"},
		{"shop only", map[string]string{"shop": "bicycle"}, "bicycle"},
		{"untyped", map[string]string{"name": "Somewhere"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := overpass.Element{Tags: tt.tags}
			assert.Equal(t, tt.want, el.PrimaryType())
		})
	}
}

func TestElement_Address(t *testing.T) {
	t.Run("joins present address tags", func(t *testing.T) {
		el := overpass.Element{Tags: map[string]string{
			"addr:street":      "Main Street",
			"addr:housenumber": "12",
			"addr:city":        "Springfield",
		}}

		assert.Equal(t, "Main Street 12 Springfield", el.Address())
	})

	t.Run("skips missing components", func(t *testing.T) {
		el := overpass.Element{Tags: map[string]string{"addr:city": "Springfield"}}

		assert.Equal(t, "Springfield", el.Address())
	})

	t.Run("empty when untagged", func(t *testing.T) {
		assert.Empty(t, overpass.Element{}.Address())
	})
}

func TestElement_Phone(t *testing.T) {
	t.Run("plain phone tag", func(t *testing.T) {
		el := overpass.Element{Tags: map[string]string{"phone": "+1 555 0100"}}
		assert.Equal(t, "+1 555 0100", el.Phone())
	})

	t.Run("contact namespace fallback", func(t *testing.T) {
		el := overpass.Element{Tags: map[string]string{"contact:phone": "+1 555 0199"}}
		assert.Equal(t, "+1 555 0199", el.Phone())
	})
}
