package rag

import "context"

// Embedder turns query text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Searcher runs a similarity query and returns the provider's raw
// response. The shape of the response is the processor's problem.
type Searcher interface {
	Query(ctx context.Context, vector []float64, topK int) (any, error)
}
