package overpass_test

import (
	"strings"
	"testing"

	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/overpass"
	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	point := models.GeoPoint{Latitude: 37.77, Longitude: -122.42}
	query := overpass.BuildQuery(point, 20000)

	t.Run("json output with server timeout", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(query, "[out:json][timeout:40];("))
		assert.True(t, strings.HasSuffix(query, ");out body center;"))
	})

	t.Run("covers every repair-relevant tag", func(t *testing.T) {
		for _, tag := range []string{
			"shop=electronics", "shop=mobile_phone", "shop=computer",
			"shop=car_repair", "amenity=car_repair", "craft=electronics_repair",
			"craft=tailor", "craft=shoemaker", "shop=bicycle",
			"amenity=bicycle_repair_station", "shop=appliance",
			"craft=watchmaker", "shop=hardware",
		} {
			assert.Contains(t, query, "["+tag+"]")
		}
	})

	t.Run("queries all three geometry kinds per tag", func(t *testing.T) {
		selector := "[shop=bicycle](around:20000,37.77,-122.42);"
		assert.Contains(t, query, "node"+selector)
		assert.Contains(t, query, "way"+selector)
		assert.Contains(t, query, "relation"+selector)
	})

	t.Run("geometry kind count matches tag count", func(t *testing.T) {
		assert.Equal(t, 13, strings.Count(query, "node["))
		assert.Equal(t, 13, strings.Count(query, "way["))
		assert.Equal(t, 13, strings.Count(query, "relation["))
	})
}
