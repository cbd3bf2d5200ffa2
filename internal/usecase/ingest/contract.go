package ingest

import (
	"context"

	"github.com/Orio77/coctail-mcp/internal/domain"
)

// Loader reads the catalog data set.
type Loader interface {
	Load() (*domain.Catalog, error)
}

// Embedder turns catalog text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Upserter writes vector records to the index.
type Upserter interface {
	Upsert(ctx context.Context, vectors []domain.Vector) error
}
