// Package openai talks to an OpenAI-compatible embeddings endpoint.
// Ollama, Nebius, and OpenAI itself all serve this API shape.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/metrics"
)

// Provider is an embedding provider client. It carries no model of its
// own: the model identifier arrives with every request.
type Provider struct {
	client     *openai.Client
	dimensions int
	name       string
	logger     *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Dimensions int
	Name       string
	Logger     *zap.Logger
}

// NewProvider creates an OpenAI-compatible embedding provider client.
func NewProvider(cfg *Config) *Provider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	name := cfg.Name
	if name == "" {
		name = "openai"
	}

	return &Provider{
		client:     openai.NewClientWithConfig(clientCfg),
		dimensions: cfg.Dimensions,
		name:       name,
		logger:     cfg.Logger,
	}
}

// CreateEmbedding requests embeddings for input under the given model and
// returns every vector the provider produced, each component explicitly
// converted to float64.
func (p *Provider) CreateEmbedding(ctx context.Context, model, input string) ([][]float64, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{input},
		Model:          openai.EmbeddingModel(model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if p.dimensions > 0 {
		req.Dimensions = p.dimensions
	}

	start := time.Now()

	resp, err := p.client.CreateEmbeddings(ctx, req)

	// Failed requests are timed too.
	metrics.EmbeddingRequestDuration.WithLabelValues(p.name, model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(p.name, model, "error").Inc()
		return nil, parseAPIError(err)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(p.name, model, "success").Inc()

	vectors := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for j, c := range d.Embedding {
			vec[j] = float64(c)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("embedding API error %d: %s", reqErr.HTTPStatusCode, detail)
		}
		return fmt.Errorf("embedding API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("embedding request failed: %w", err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
