package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchRequests  *prometheus.CounterVec
	CacheHits       prometheus.Counter
	ProviderSeconds *prometheus.HistogramVec
	PathRequests    *prometheus.CounterVec
	PathSeconds     *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPSeconds     *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SearchRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_search_requests_total",
			Help: "Total number of place searches by outcome.",
		}, []string{"status"}),
		CacheHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_geocode_cache_hits_total",
			Help: "Total number of searches answered from the geocode cache.",
		}),
		ProviderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		PathRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_path_requests_total",
			Help: "Total number of pathfinding requests by algorithm and outcome.",
		}, []string{"algorithm", "status"}),
		PathSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_pathfinder_request_duration_seconds",
			Help:    "Duration of requests to the pathfinding backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"algorithm"}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_http_requests_total",
			Help: "Total number of API requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_http_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_active_workers",
			Help: "Current number of workers resolving markers.",
		}),
	}
}
