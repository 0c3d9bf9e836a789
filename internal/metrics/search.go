package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Proximity searches by outcome",
		},
		[]string{"outcome"}, // ok / empty / validation / not_found / store / internal
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Active locations ranked per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchCandidates)
	searchMetricsRegistered = true
}

// SearchRecorder adapts the search collectors to the search service.
type SearchRecorder struct{}

// ObserveSearch counts one search outcome and, when ranking ran, its candidate count.
func (SearchRecorder) ObserveSearch(outcome string, candidates int) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
	if candidates >= 0 {
		SearchCandidates.Observe(float64(candidates))
	}
}
