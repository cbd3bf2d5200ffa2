package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Vector is a record destined for the vector index: an identifier, the
// embedding values, and the metadata stored alongside them.
type Vector struct {
	ID       string
	Values   []float64
	Metadata map[string]any
}
