package storefront

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	endpointProducts = "products"
	endpointMeta     = "filter_meta"

	outcomeOK    = "ok"
	outcomeError = "error"

	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_requests_total",
		Help: "Total number of storefront queries by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_request_duration_seconds",
		Help:    "Time taken to answer a storefront query",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"endpoint"})

	metaCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_meta_cache_total",
		Help: "Filter metadata cache lookups by result",
	}, []string{"result"})
)

func recordRequest(endpoint, outcome string, d time.Duration) {
	requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func recordCache(result string) {
	metaCacheTotal.WithLabelValues(result).Inc()
}
