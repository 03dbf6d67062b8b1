package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/UnknownOlympus/beacon/internal/cache"
	"github.com/UnknownOlympus/beacon/internal/category"
	"github.com/UnknownOlympus/beacon/internal/classify"
	"github.com/UnknownOlympus/beacon/internal/geo"
	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/overpass"
	"github.com/UnknownOlympus/beacon/internal/rank"
	"github.com/google/uuid"
)

// Fetcher performs one logical query against the geodata backend pool.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]byte, error)
}

// Limits applied by every search.
const (
	maxResults      = 20
	minRadiusMeters = 1000
	maxRadiusMeters = 40000
)

// SearchService composes the discovery pipeline: cache lookup, backend
// fetch, classification, category and free-text filtering, distance
// ranking and truncation. One search runs to completion without internal
// fan-out; the result cache is the only shared state.
type SearchService struct {
	log      *slog.Logger       // Logger for logging service activities
	fetcher  Fetcher            // Client for the geodata endpoint pool
	geocoder geocoding.Provider // Geocoding provider for free-text locations
	results  cache.Store        // Time-bounded result cache
	metrics  *metrics.Metrics   // Metrics for tracking service performance
}

// NewSearchService creates a new instance of SearchService. It takes a
// logger, a backend fetcher, a geocoding provider, a result cache and
// metrics for monitoring, and returns a pointer to the newly created
// SearchService.
func NewSearchService(
	log *slog.Logger,
	fetcher Fetcher,
	geocoder geocoding.Provider,
	results cache.Store,
	metrics *metrics.Metrics,
) *SearchService {
	return &SearchService{
		log:      log,
		fetcher:  fetcher,
		geocoder: geocoder,
		results:  results,
		metrics:  metrics,
	}
}

// Search returns up to 20 repair-capable businesses around the query
// point, sorted ascending by distance. Backend exhaustion is converted to
// an empty result set here; callers never see a hard failure for a search
// that simply found nothing.
func (ss *SearchService) Search(ctx context.Context, query models.SearchQuery) []models.ServiceRecord {
	ss.metrics.InFlightSearches.Inc()
	defer ss.metrics.InFlightSearches.Dec()

	if query.RadiusKm <= 0 {
		query.RadiusKm = models.DefaultRadiusKm
	}

	key := cache.Key(query)
	if cached, found := ss.results.Get(key); found {
		ss.log.DebugContext(ctx, "Search served from cache", "key", key, "results", len(cached))
		ss.metrics.SearchesTotal.WithLabelValues("cache_hit").Inc()
		return cached
	}

	radiusMeters := clampRadiusMeters(query.RadiusKm)
	overpassQuery := overpass.BuildQuery(query.Point, radiusMeters)

	startTime := time.Now()
	body, err := ss.fetcher.Fetch(ctx, overpassQuery)
	ss.metrics.RequestSeconds.WithLabelValues("overpass").Observe(time.Since(startTime).Seconds())

	if err != nil {
		ss.log.ErrorContext(ctx, "Failed to fetch nearby services", "key", key, "error", err)
		ss.metrics.APIErrors.Inc()
		ss.metrics.SearchesTotal.WithLabelValues("failure").Inc()
		return []models.ServiceRecord{}
	}

	elements, err := overpass.ParseElements(body)
	if err != nil {
		ss.log.ErrorContext(ctx, "Failed to parse backend payload", "key", key, "error", err)
		ss.metrics.APIErrors.Inc()
		ss.metrics.SearchesTotal.WithLabelValues("failure").Inc()
		return []models.ServiceRecord{}
	}

	// Malformed records are dropped silently, per record.
	usable := make([]overpass.Element, 0, len(elements))
	for _, el := range elements {
		if el.Name() == "" {
			continue
		}
		if _, ok := el.Coordinate(); !ok {
			continue
		}
		usable = append(usable, el)
	}

	accepted := classify.Filter(usable)
	if len(accepted) == 0 {
		// The strict filter found nothing: fall back to the whole raw set.
		// Showing loosely related results beats showing none; this trades
		// precision for availability and is intentional.
		ss.log.InfoContext(ctx, "Classifier accepted nothing, serving unfiltered set",
			"key", key, "raw", len(usable))
		accepted = usable
	}

	records := make([]models.ServiceRecord, 0, len(accepted))
	for _, el := range accepted {
		records = append(records, buildRecord(query.Point, el))
	}

	records = category.Filter(records, query.Category)

	if text := strings.ToLower(strings.TrimSpace(query.Query)); text != "" {
		filtered := make([]models.ServiceRecord, 0, len(records))
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Name), text) ||
				strings.Contains(strings.ToLower(rec.Address), text) ||
				strings.Contains(strings.ToLower(rec.Type), text) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DistanceKm < records[j].DistanceKm
	})
	if len(records) > maxResults {
		records = records[:maxResults]
	}

	ss.results.Put(key, records)
	ss.metrics.SearchesTotal.WithLabelValues("success").Inc()
	ss.log.InfoContext(ctx, "Search completed", "key", key, "results", len(records))

	return records
}

// Geocode resolves a free-text place name to a point via the configured
// provider. geocoding.ErrLocationNotFound stays matchable through the
// wrap so callers can message it distinctly from an empty search.
func (ss *SearchService) Geocode(ctx context.Context, place string) (*models.GeoPoint, error) {
	startTime := time.Now()
	point, err := ss.geocoder.Geocode(ctx, place)
	ss.metrics.RequestSeconds.WithLabelValues("geocode").Observe(time.Since(startTime).Seconds())

	if err != nil {
		if !errors.Is(err, geocoding.ErrLocationNotFound) {
			ss.metrics.APIErrors.Inc()
		}
		ss.log.WarnContext(ctx, "Geocoding failed", "place", place, "error", err)
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}

	return point, nil
}

// Recommend ranks an externally supplied service list (typically the
// analysis backend's pre-fetched services) and returns the closest n,
// bypassing Search entirely. Records are normalized first since that
// backend omits ids and addresses more often than not.
func (ss *SearchService) Recommend(analysis models.Analysis, n int) []models.ServiceRecord {
	if n <= 0 {
		n = rank.DefaultTopN
	}

	normalized := make([]models.ServiceRecord, 0, len(analysis.Services))
	for _, svc := range analysis.Services {
		if svc.ID == "" {
			svc.ID = "ai-" + uuid.NewString()
		}
		if svc.Name == "" {
			svc.Name = "Unknown"
		}
		if svc.Address == "" {
			svc.Address = models.UnknownAddress
		}
		if svc.Type == "" {
			svc.Type = "repair"
		}
		normalized = append(normalized, svc)
	}

	return rank.Top(normalized, n)
}

// buildRecord converts a raw element into an immutable ServiceRecord with
// the distance computed from the search origin. The label is always
// derived from the computed distance.
func buildRecord(origin models.GeoPoint, el overpass.Element) models.ServiceRecord {
	point, _ := el.Coordinate()
	distance := geo.DistanceKm(origin, point)

	address := el.Address()
	if address == "" {
		address = models.UnknownAddress
	}

	recordType := el.PrimaryType()
	if recordType == "" {
		recordType = "repair"
	}

	return models.ServiceRecord{
		ID:         fmt.Sprintf("osm-%d", el.ID),
		Name:       el.Name(),
		Address:    address,
		Location:   point,
		DistanceKm: distance,
		Distance:   geo.FormatDistance(distance),
		Type:       recordType,
		Phone:      el.Phone(),
	}
}

// clampRadiusMeters converts the requested radius to meters within the
// backend's accepted window.
func clampRadiusMeters(radiusKm float64) int {
	meters := int(radiusKm * 1000)
	if meters < minRadiusMeters {
		return minRadiusMeters
	}
	if meters > maxRadiusMeters {
		return maxRadiusMeters
	}
	return meters
}
