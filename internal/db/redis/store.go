package redis

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/Orio77/coctail-mcp/internal/db"
)

const (
	fieldVector   = "__vector"
	fieldMetadata = "__metadata"
	fieldScore    = "__vector_score"
)

// EnsureIndex creates the FT vector index if it does not exist yet.
func (s *Store) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("index name is required")
	}
	if def.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive")
	}

	args := []string{
		def.Name,
		"ON", "HASH",
		"PREFIX", "1", def.KeyPrefix,
		"SCHEMA",
		fieldVector, "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(def.Dimensions),
		"DISTANCE_METRIC", "COSINE",
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// Upsert stores vectors as hashes in a single DoMulti round-trip.
// The record metadata travels JSON-encoded next to the embedding blob.
func (s *Store) Upsert(ctx context.Context, keyPrefix string, vectors []db.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(vectors))
	for i, v := range vectors {
		meta, err := json.Marshal(v.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata %s: %w", v.ID, err)
		}
		cmds[i] = s.b().Hset().Key(keyPrefix + v.ID).FieldValue().
			FieldValue(fieldVector, vectorToBytes(v.Values)).
			FieldValue(fieldMetadata, string(meta)).
			Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("key %s: %w", vectors[i].ID, err)}
		}
	}
	return nil
}

// Query runs a KNN vector similarity search via FT.SEARCH.
func (s *Store) Query(ctx context.Context, q *db.KNNQuery) (*db.QueryResponse, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.TopK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	queryStr := fmt.Sprintf("*=>[KNN %d @%s $BLOB]", q.TopK, fieldVector)

	args := []string{q.IndexName, queryStr}
	if q.IncludeMetadata {
		args = append(args, "RETURN", "2", fieldMetadata, fieldScore)
	} else {
		args = append(args, "RETURN", "1", fieldScore)
	}
	args = append(args,
		"LIMIT", "0", strconv.Itoa(q.TopK),
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKNNResult(raw, q.KeyPrefix)
}

// DeleteAll removes every vector under the key prefix. The index itself stays.
func (s *Store) DeleteAll(ctx context.Context, keyPrefix string) error {
	keys, err := s.scan(ctx, keyPrefix+"*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	cmd := s.b().Del().Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Stats returns the total vector count via FT.SEARCH with LIMIT 0 0.
func (s *Store) Stats(ctx context.Context, index string) (*db.IndexStats, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(index, "*", "LIMIT", "0", "0").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return &db.IndexStats{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse count: %w", err)
	}
	return &db.IndexStats{TotalVectorCount: int(total)}, nil
}

func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// --- Result parsing ---

func parseKNNResult(raw []rueidis.RedisMessage, keyPrefix string) (*db.QueryResponse, error) {
	if len(raw) == 0 {
		return &db.QueryResponse{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.QueryResponse{}, nil
	}

	matches := make([]db.QueryMatch, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		m := db.QueryMatch{ID: strings.TrimPrefix(key, keyPrefix)}
		pairs := parseFieldPairs(fields)

		if scoreStr, ok := pairs[fieldScore]; ok {
			if dist, err := strconv.ParseFloat(scoreStr, 64); err == nil {
				m.Score = max(0, 1.0-dist) // cosine distance -> similarity, clamped to [0,1]
			}
		}
		if metaStr, ok := pairs[fieldMetadata]; ok && metaStr != "" {
			var meta map[string]any
			if json.Unmarshal([]byte(metaStr), &meta) == nil {
				m.Metadata = meta
			}
		}

		matches = append(matches, m)
	}

	return &db.QueryResponse{Matches: matches}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// vectorToBytes serializes an embedding as little-endian FLOAT32 for FT.SEARCH.
func vectorToBytes(vec []float64) string {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	return rueidis.BinaryString(buf)
}
