// Package vector wraps the vector store behind the search gateway
// contract: bounded topK, batched upserts, and taxonomy-wrapped errors.
package vector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/db"
	"github.com/Orio77/coctail-mcp/internal/domain"
	"github.com/Orio77/coctail-mcp/internal/metrics"
)

const (
	// DefaultTopK replaces non-positive topK values.
	DefaultTopK = 5
	// MaxTopK caps topK to keep queries bounded.
	MaxTopK = 1000
	// UpsertBatchSize is the provider's per-request record limit.
	UpsertBatchSize = 100
)

// store is the consumer interface for vector operations (ISP).
type store interface {
	Upsert(ctx context.Context, keyPrefix string, vectors []db.Vector) error
	Query(ctx context.Context, q *db.KNNQuery) (*db.QueryResponse, error)
	DeleteAll(ctx context.Context, keyPrefix string) error
	Stats(ctx context.Context, index string) (*db.IndexStats, error)
}

// Repo is the vector search gateway over a single index.
type Repo struct {
	store     store
	index     string
	keyPrefix string
	logger    *zap.Logger
}

// New creates a vector search gateway.
func New(s store, index, keyPrefix string, logger *zap.Logger) *Repo {
	return &Repo{store: s, index: index, keyPrefix: keyPrefix, logger: logger}
}

// Query runs a similarity search and returns the provider's raw response.
// Out-of-range topK is coerced, not rejected; an empty vector short-circuits
// to an empty response without touching the provider.
func (r *Repo) Query(ctx context.Context, vector []float64, topK int) (any, error) {
	if len(vector) == 0 {
		r.logger.Warn("empty vector provided for query")
		return &db.QueryResponse{}, nil
	}

	if topK <= 0 {
		r.logger.Warn("invalid topK, using default",
			zap.Int("top_k", topK),
			zap.Int("default", DefaultTopK),
		)
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		r.logger.Warn("topK exceeds maximum, clamping",
			zap.Int("top_k", topK),
			zap.Int("max", MaxTopK),
		)
		topK = MaxTopK
	}

	resp, err := r.store.Query(ctx, &db.KNNQuery{
		IndexName:       r.index,
		KeyPrefix:       r.keyPrefix,
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("query", "error").Inc()
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrSearch, r.index, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("query", "success").Inc()
	return resp, nil
}

// Upsert writes records in batches of at most UpsertBatchSize.
// The first failing batch aborts the whole upsert; there is no partial
// commit tracking.
func (r *Repo) Upsert(ctx context.Context, vectors []domain.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	records := make([]db.Vector, len(vectors))
	for i, v := range vectors {
		records[i] = db.Vector{ID: v.ID, Values: v.Values, Metadata: v.Metadata}
	}

	for start := 0; start < len(records); start += UpsertBatchSize {
		end := min(start+UpsertBatchSize, len(records))

		if err := r.store.Upsert(ctx, r.keyPrefix, records[start:end]); err != nil {
			metrics.SearchRequestsTotal.WithLabelValues("upsert", "error").Inc()
			return fmt.Errorf("%w: upsert batch %d: %w", domain.ErrSearch, start/UpsertBatchSize+1, err)
		}

		r.logger.Debug("upserted batch",
			zap.Int("batch", start/UpsertBatchSize+1),
			zap.Int("size", end-start),
		)
	}

	metrics.SearchRequestsTotal.WithLabelValues("upsert", "success").Inc()
	r.logger.Info("upserted vectors", zap.Int("count", len(records)))
	return nil
}

// Clear deletes every vector from the index.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, r.keyPrefix); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("%w: clear %s: %w", domain.ErrSearch, r.index, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues("clear", "success").Inc()
	return nil
}

// Count returns the provider's reported total vector count.
func (r *Repo) Count(ctx context.Context) (int, error) {
	stats, err := r.store.Stats(ctx, r.index)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("stats", "error").Inc()
		return 0, fmt.Errorf("%w: stats %s: %w", domain.ErrSearch, r.index, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues("stats", "success").Inc()
	return stats.TotalVectorCount, nil
}
