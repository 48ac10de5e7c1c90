package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "helper_matching", Name: "match_requests_total", Help: "Total matching calls"})
	MatchLatency       = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: "helper_matching", Name: "match_latency_seconds", Help: "Matching call latency"})
	PoolFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "helper_matching", Name: "pool_fallbacks_total", Help: "Times the sample fallback pool was served"})
	CandidatesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "helper_matching",
		Name:      "candidates_returned",
		Help:      "Ranked candidates returned per matching call",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	})
	TopMatchScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "helper_matching",
		Name:      "top_match_score",
		Help:      "Score of the best candidate per matching call",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	AssignmentsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "helper_matching", Name: "assignments_total", Help: "Assignments created"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "helper_matching", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helper_matching",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
