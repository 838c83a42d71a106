// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_requests_total",
			Help: "Total number of pipeline resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "resolution_duration_seconds",
			Help: "Duration of a single pipeline resolution in seconds",
		},
	)

	RegistryCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_calls_total",
			Help: "Total number of building-registry API calls by endpoint",
		},
		[]string{"endpoint", "status"},
	)

	RegistryCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_cache_hits_total",
			Help: "Total number of registry responses served from cache",
		},
		[]string{"endpoint"},
	)
)
