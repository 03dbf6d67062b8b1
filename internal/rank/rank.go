// Package rank orders service lists by distance and takes the closest few.
// It works on lists from any source: the orchestrator's own results as well
// as service lists handed over by the external analysis backend, where the
// numeric distance may be missing and only a display label is available.
package rank

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// DefaultTopN is how many recommendations the AI-assisted path surfaces.
const DefaultTopN = 3

var (
	numberPattern = regexp.MustCompile(`\d+[\d,]*(?:\.\d+)?`)
	metersPattern = regexp.MustCompile(`\bm\b`)
)

// Top returns the n services closest to the caller, preferring the
// precomputed numeric distance and falling back to parsing the display
// label. The sort is stable and operates on a copy; the input slice is
// never reordered.
func Top(services []models.ServiceRecord, n int) []models.ServiceRecord {
	ranked := make([]models.ServiceRecord, len(services))
	copy(ranked, services)

	sort.SliceStable(ranked, func(i, j int) bool {
		return resolveKm(ranked[i]) < resolveKm(ranked[j])
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}

	return ranked
}

// resolveKm picks the best available distance for a record: a positive
// DistanceKm wins, otherwise the label is parsed.
func resolveKm(rec models.ServiceRecord) float64 {
	if rec.DistanceKm > 0 {
		return rec.DistanceKm
	}

	return ParseDistanceKm(rec.Distance)
}

// ParseDistanceKm converts a human-readable distance like "800 m" or
// "1.2 km" to kilometers. A value without a unit is taken as kilometers;
// anything unparseable ranks last via +Inf.
func ParseDistanceKm(label string) float64 {
	lower := strings.ToLower(strings.TrimSpace(label))

	match := numberPattern.FindString(lower)
	if match == "" {
		return math.Inf(1)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return math.Inf(1)
	}

	if strings.Contains(lower, "km") {
		return value
	}
	if metersPattern.MatchString(lower) {
		return value / 1000
	}

	return value
}
