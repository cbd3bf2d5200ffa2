// Package rag runs the query pipeline: validate, embed, search,
// sanitize. Every external call is attempted exactly once; a stage
// failure aborts the pipeline with its taxonomy error and cause.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
)

// Service orchestrates one query from text to canonical matches.
type Service struct {
	embedder Embedder
	searcher Searcher
	logger   *zap.Logger
}

// New creates the pipeline orchestrator.
func New(embedder Embedder, searcher Searcher, logger *zap.Logger) *Service {
	return &Service{embedder: embedder, searcher: searcher, logger: logger}
}

// RunQuery answers a natural-language query with sanitized matches.
// On success the result is never nil; no matches yields an empty slice.
func (s *Service) RunQuery(ctx context.Context, query string, topK int) ([]domain.Match, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: query must be non-empty", domain.ErrValidation)
	}

	vector, err := s.embedder.Embed(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: embedder returned an empty vector", domain.ErrEmbedding)
	}

	raw, err := s.searcher.Query(ctx, vector, topK)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: search returned no response", domain.ErrSearch)
	}

	matches, err := s.process(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("query answered",
		zap.String("query", trimmed),
		zap.Int("top_k", topK),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}
