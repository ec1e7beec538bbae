package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of listings search requests",
		},
		[]string{"role", "status"},
	)

	SearchCompileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_compile_duration_seconds",
			Help:    "Duration of query compilation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	SearchQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_query_duration_seconds",
			Help: "Duration of compiled query execution in seconds",
		},
		[]string{"query"},
	)

	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_cache_hits_total",
			Help: "Number of search requests served from the result cache",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_cache_misses_total",
			Help: "Number of search requests that missed the result cache",
		},
	)
)
