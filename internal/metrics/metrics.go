package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	APIErrors        prometheus.Counter
	RequestSeconds   *prometheus.HistogramVec
	InFlightSearches prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of nearby-service searches by outcome.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "search_backend_api_errors_total",
			Help: "Total number of errors received from the geodata backends.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "search_backend_request_duration_seconds",
			Help:    "Duration of requests to the geodata backends.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
		InFlightSearches: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "search_in_flight",
			Help: "Current number of searches being served.",
		}),
	}
}
