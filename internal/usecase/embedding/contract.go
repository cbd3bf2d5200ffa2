package embedding

import "context"

// Provider is the outbound embedding boundary: model plus input text in,
// one or more numeric vectors out. Only the first vector is used.
type Provider interface {
	CreateEmbedding(ctx context.Context, model, input string) ([][]float64, error)
}
