// Package ingest embeds the cocktail catalog and loads it into the
// vector index. A single item that fails to embed is skipped with a
// warning; the run only fails when nothing could be embedded at all.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
	"github.com/Orio77/coctail-mcp/internal/domain/sanitize"
)

// Summary reports what one ingestion run accomplished.
type Summary struct {
	Cocktails   int
	Ingredients int
	Skipped     int
}

// Service runs catalog ingestion end to end.
type Service struct {
	loader   Loader
	embedder Embedder
	upserter Upserter
	logger   *zap.Logger
}

// New creates an ingestion service.
func New(loader Loader, embedder Embedder, upserter Upserter, logger *zap.Logger) *Service {
	return &Service{loader: loader, embedder: embedder, upserter: upserter, logger: logger}
}

// Run loads the catalog, embeds every cocktail and ingredient, and
// upserts the vectors.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	catalog, err := s.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(catalog.Cocktails) == 0 && len(catalog.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrValidation)
	}

	summary := &Summary{}
	var vectors []domain.Vector

	for i := range catalog.Cocktails {
		c := &catalog.Cocktails[i]
		v, ok := s.embedItem(ctx, c.VectorID(), c.EmbedText(), c.Metadata())
		if !ok {
			summary.Skipped++
			continue
		}
		vectors = append(vectors, v)
		summary.Cocktails++
	}
	for i := range catalog.Ingredients {
		ing := &catalog.Ingredients[i]
		v, ok := s.embedItem(ctx, ing.VectorID(), ing.EmbedText(), ing.Metadata())
		if !ok {
			summary.Skipped++
			continue
		}
		vectors = append(vectors, v)
		summary.Ingredients++
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no catalog items could be embedded", domain.ErrEmbedding)
	}

	if err := s.upserter.Upsert(ctx, vectors); err != nil {
		return nil, err
	}

	s.logger.Info("ingestion complete",
		zap.Int("cocktails", summary.Cocktails),
		zap.Int("ingredients", summary.Ingredients),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *Service) embedItem(ctx context.Context, id, text string, metadata map[string]any) (domain.Vector, bool) {
	values, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("skipping catalog item",
			zap.String("id", id),
			zap.Error(err),
		)
		return domain.Vector{}, false
	}

	meta, _ := sanitize.Clean(metadata).(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	return domain.Vector{ID: id, Values: values, Metadata: meta}, true
}
