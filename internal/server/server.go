// Package server exposes the discovery core over a small JSON API so the
// presentation layer stays a plain HTTP collaborator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/gorilla/mux"
)

// SearchAPI is the inbound contract the handlers serve. It matches the
// SearchService surface; the indirection keeps handlers testable without
// real backends.
type SearchAPI interface {
	Search(ctx context.Context, query models.SearchQuery) []models.ServiceRecord
	Geocode(ctx context.Context, place string) (*models.GeoPoint, error)
	Recommend(analysis models.Analysis, n int) []models.ServiceRecord
}

// Handlers holds the dependencies for serving API requests.
type Handlers struct {
	api SearchAPI
	log *slog.Logger
}

// NewHandlers creates a new Handlers instance over the given service.
func NewHandlers(api SearchAPI, log *slog.Logger) *Handlers {
	return &Handlers{api: api, log: log}
}

// Router builds the API route table.
func (h *Handlers) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/search", h.SearchNearby).Methods(http.MethodGet)
	router.HandleFunc("/api/geocode", h.GeocodePlace).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendations", h.RecommendServices).Methods(http.MethodPost)

	return router
}

// searchResponse is the envelope for search results.
type searchResponse struct {
	Results []models.ServiceRecord `json:"results"`
	Total   int                    `json:"total"`
}

// SearchNearby handles GET /api/search. The center is taken from lat/lon
// query parameters, or resolved from a free-text "location" parameter via
// the geocoder when coordinates are absent.
func (h *Handlers) SearchNearby(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	point, err := h.resolvePoint(r.Context(), params.Get("lat"), params.Get("lon"), params.Get("location"))
	if err != nil {
		if errors.Is(err, geocoding.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "could not find that location")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	radiusKm := models.DefaultRadiusKm
	if raw := params.Get("radius"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "radius must be a number")
			return
		}
	}

	results := h.api.Search(r.Context(), models.SearchQuery{
		Point:    *point,
		Category: params.Get("category"),
		Query:    params.Get("q"),
		RadiusKm: radiusKm,
	})

	writeJSON(w, http.StatusOK, searchResponse{Results: results, Total: len(results)})
}

// GeocodePlace handles GET /api/geocode.
func (h *Handlers) GeocodePlace(w http.ResponseWriter, r *http.Request) {
	place := strings.TrimSpace(r.URL.Query().Get("q"))
	if place == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	point, err := h.api.Geocode(r.Context(), place)
	if err != nil {
		if errors.Is(err, geocoding.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "could not find that location")
			return
		}
		h.log.ErrorContext(r.Context(), "Geocode request failed", "place", place, "error", err)
		writeError(w, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(w, http.StatusOK, point)
}

// recommendRequest is the body for POST /api/recommendations: the output
// of the external analysis backend plus an optional result count.
type recommendRequest struct {
	models.Analysis
	TopN int `json:"top_n,omitempty"`
}

// RecommendServices handles POST /api/recommendations, ranking the
// caller-supplied service list without a backend search.
func (h *Handlers) RecommendServices(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results := h.api.Recommend(req.Analysis, req.TopN)

	writeJSON(w, http.StatusOK, searchResponse{Results: results, Total: len(results)})
}

// resolvePoint picks the search center from explicit coordinates or a
// free-text location.
func (h *Handlers) resolvePoint(ctx context.Context, rawLat, rawLon, location string) (*models.GeoPoint, error) {
	if rawLat == "" && rawLon == "" {
		if strings.TrimSpace(location) == "" {
			return nil, errors.New("lat and lon, or location, are required")
		}
		return h.api.Geocode(ctx, location)
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, errors.New("lon must be a number")
	}

	return &models.GeoPoint{Latitude: lat, Longitude: lon}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
