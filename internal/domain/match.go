package domain

// Match is a single sanitized search hit returned to tool callers.
// Metadata holds only JSON-safe values: a Match always round-trips
// through encoding/json without loss.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}
