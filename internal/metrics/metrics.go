// Package metrics holds the Prometheus instruments for the RAG pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocktailmcp",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cocktailmcp",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocktailmcp",
			Name:      "search_requests_total",
			Help:      "Total number of vector index operations",
		},
		[]string{"operation", "status"},
	)

	MatchesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cocktailmcp",
			Name:      "matches_dropped_total",
			Help:      "Raw matches dropped during result processing",
		},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocktailmcp",
			Name:      "tool_calls_total",
			Help:      "Total MCP tool invocations",
		},
		[]string{"tool", "status"},
	)
)

var registered bool

// Register registers all pipeline metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(MatchesDroppedTotal)
	prometheus.MustRegister(ToolCallsTotal)
	registered = true
}
