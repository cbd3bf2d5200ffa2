package rag

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/db"
	"github.com/Orio77/coctail-mcp/internal/domain"
	"github.com/Orio77/coctail-mcp/internal/domain/sanitize"
	"github.com/Orio77/coctail-mcp/internal/metrics"
)

// process converts a raw search response into canonical matches.
// One malformed match is dropped with a warning; it never sinks the
// batch. The assembled result must serialize to JSON or the whole
// call fails.
func (s *Service) process(raw any) ([]domain.Match, error) {
	rawMatches, err := extractMatches(raw)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Match, 0, len(rawMatches))
	for i, rm := range rawMatches {
		match, err := adaptMatch(rm)
		if err != nil {
			metrics.MatchesDroppedTotal.Inc()
			s.logger.Warn("dropping malformed match",
				zap.Int("position", i),
				zap.Error(err),
			)
			continue
		}
		matches = append(matches, match)
	}

	if _, err := json.Marshal(matches); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	return matches, nil
}

// extractMatches pulls the match list out of the two response shapes
// the search gateway can produce: the typed store response, or a
// generic JSON-decoded mapping with a "matches" key.
func extractMatches(raw any) ([]any, error) {
	switch resp := raw.(type) {
	case nil:
		return nil, nil
	case *db.QueryResponse:
		if resp == nil {
			return nil, nil
		}
		out := make([]any, len(resp.Matches))
		for i, m := range resp.Matches {
			out[i] = m
		}
		return out, nil
	case map[string]any:
		field, ok := resp["matches"]
		if !ok || field == nil {
			return nil, nil
		}
		list, ok := field.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: matches field is %T", domain.ErrFormat, field)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: search response is %T", domain.ErrFormat, raw)
	}
}

// adaptMatch maps one raw match onto the canonical record. Missing
// fields take defaults; a present field that resists coercion is an
// error, so the caller can drop the match.
func adaptMatch(raw any) (domain.Match, error) {
	match := domain.Match{Metadata: map[string]any{}}

	var meta any
	switch m := raw.(type) {
	case db.QueryMatch:
		match.ID = m.ID
		match.Score = m.Score
		meta = m.Metadata
	case map[string]any:
		id, err := coerceString(m["id"])
		if err != nil {
			return domain.Match{}, fmt.Errorf("id: %w", err)
		}
		score, err := coerceFloat(m["score"])
		if err != nil {
			return domain.Match{}, fmt.Errorf("score: %w", err)
		}
		match.ID = id
		match.Score = score
		meta = m["metadata"]
	default:
		return domain.Match{}, fmt.Errorf("match is %T", raw)
	}

	if meta != nil {
		if cleaned, ok := sanitize.Clean(meta).(map[string]any); ok {
			match.Metadata = cleaned
		}
	}
	return match, nil
}

func coerceString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	default:
		return "", fmt.Errorf("cannot coerce %T to string", v)
	}
}

func coerceFloat(v any) (float64, error) {
	switch f := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to float", f)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to float", v)
	}
}
