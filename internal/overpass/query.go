// Package overpass provides a resilient client for Overpass-style geodata
// endpoints, plus query building and response parsing for spatial tag
// searches.
package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// repairTypes is the fixed list of repair-relevant tag selectors included
// in every search query.
var repairTypes = []string{
	"shop=electronics",
	"shop=mobile_phone",
	"shop=computer",
	"shop=car_repair",
	"amenity=car_repair",
	"craft=electronics_repair",
	"craft=tailor",
	"craft=shoemaker",
	"shop=bicycle",
	"amenity=bicycle_repair_station",
	"shop=appliance",
	"craft=watchmaker",
	"shop=hardware",
}

// queryTimeoutSeconds is the server-side evaluation budget sent with every
// query.
const queryTimeoutSeconds = 40

// BuildQuery renders an Overpass QL query that covers every repair-relevant
// tag around the given point. Each tag is queried for all three geometry
// kinds (node, way, relation) so coverage does not depend on how a business
// was mapped; `out body center` resolves a representative coordinate for
// non-point geometries.
func BuildQuery(point models.GeoPoint, radiusMeters int) string {
	lat := strconv.FormatFloat(point.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(point.Longitude, 'f', -1, 64)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[out:json][timeout:%d];(", queryTimeoutSeconds)
	for _, tag := range repairTypes {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&sb, "%s[%s](around:%d,%s,%s);", kind, tag, radiusMeters, lat, lon)
		}
	}
	sb.WriteString(");out body center;")

	return sb.String()
}
