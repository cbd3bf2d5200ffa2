package domain

import "errors"

var (
	// ErrValidation signals bad caller input.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration signals a missing required setting.
	ErrConfiguration = errors.New("configuration missing")
	// ErrEmbedding signals an embedding provider failure or empty result.
	ErrEmbedding = errors.New("embedding failed")
	// ErrSearch signals a vector index failure.
	ErrSearch = errors.New("vector search failed")
	// ErrFormat signals an unrecognized search response shape.
	ErrFormat = errors.New("unexpected response format")
	// ErrSerialization signals output that fails the JSON-safety post-condition.
	ErrSerialization = errors.New("result serialization failed")
)
