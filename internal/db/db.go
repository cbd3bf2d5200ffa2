// Package db defines the vector store contract and its wire types.
// The store is an opaque external collaborator: it supports upsert,
// KNN query, delete-all, and stats, and nothing else leaks past it.
package db

import (
	"context"
	"time"
)

// Store is the vector store facade.
type Store interface {
	Pinger
	IndexManager
	VectorStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	EnsureIndex(ctx context.Context, def *IndexDefinition) error
}

// VectorStore provides vector record operations.
type VectorStore interface {
	Upsert(ctx context.Context, keyPrefix string, vectors []Vector) error
	Query(ctx context.Context, q *KNNQuery) (*QueryResponse, error)
	DeleteAll(ctx context.Context, keyPrefix string) error
	Stats(ctx context.Context, index string) (*IndexStats, error)
}

// IndexDefinition describes a vector index to create.
type IndexDefinition struct {
	Name       string
	KeyPrefix  string
	Dimensions int
}

// Vector is one record to upsert: identifier, embedding values, metadata.
type Vector struct {
	ID       string
	Values   []float64
	Metadata map[string]any
}

// KNNQuery is a nearest-neighbor query against an index.
type KNNQuery struct {
	IndexName       string
	KeyPrefix       string
	Vector          []float64
	TopK            int
	IncludeMetadata bool
}

// QueryResponse is the raw response of a KNN query.
type QueryResponse struct {
	Matches []QueryMatch
}

// QueryMatch is one raw search hit before sanitization.
type QueryMatch struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// IndexStats reports index-level counters.
type IndexStats struct {
	TotalVectorCount int
}
