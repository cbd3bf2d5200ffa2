// Package embedding wraps the embedding provider behind validation and
// the error taxonomy. One attempt per call: no caching, no retries.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
)

// Gateway turns raw text into an embedding vector.
type Gateway struct {
	provider Provider
	model    string
	logger   *zap.Logger
}

// New creates an embedding gateway bound to the configured model.
func New(provider Provider, model string, logger *zap.Logger) *Gateway {
	return &Gateway{provider: provider, model: model, logger: logger}
}

// Embed implements domain.Embedder.
// Text must be non-empty after trimming, and the model must be configured.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: text must be non-empty", domain.ErrValidation)
	}
	if g.model == "" {
		return nil, fmt.Errorf("%w: embedding model is not set", domain.ErrConfiguration)
	}

	vectors, err := g.provider.CreateEmbedding(ctx, g.model, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: provider returned no vectors", domain.ErrEmbedding)
	}

	g.logger.Debug("embedded text",
		zap.String("model", g.model),
		zap.Int("dimensions", len(vectors[0])),
	)

	return vectors[0], nil
}
