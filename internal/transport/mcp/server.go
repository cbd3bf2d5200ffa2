// Package mcp serves the query pipeline as a tool over the Model
// Context Protocol's stdio transport.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
	"github.com/Orio77/coctail-mcp/internal/logger"
	"github.com/Orio77/coctail-mcp/internal/metrics"
	"github.com/Orio77/coctail-mcp/internal/version"
)

const toolName = "rag_cocktails"

// defaultTopK is the number of matches a tool call asks for.
const defaultTopK = 5

// Pipeline answers a query with canonical matches.
type Pipeline interface {
	RunQuery(ctx context.Context, query string, topK int) ([]domain.Match, error)
}

// queryArgs is the tool's input schema.
type queryArgs struct {
	Query string `json:"query" jsonschema:"the natural-language cocktail query"`
}

// Server exposes the pipeline over MCP stdio.
type Server struct {
	pipeline Pipeline
	logger   *zap.Logger
}

// NewServer creates an MCP server around the pipeline.
func NewServer(pipeline Pipeline, log *zap.Logger) *Server {
	return &Server{pipeline: pipeline, logger: log}
}

// Run serves tool calls on stdin/stdout until ctx is cancelled or the
// host closes the stream.
func (s *Server) Run(ctx context.Context) error {
	srv := sdk.NewServer(&sdk.Implementation{
		Name:    "cocktail-mcp",
		Version: version.Version,
	}, nil)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        toolName,
		Description: "Search the cocktail catalog for recipes and ingredients matching a natural-language query.",
	}, s.handleQuery)

	s.logger.Info("serving MCP on stdio", zap.String("tool", toolName))
	return srv.Run(ctx, sdk.NewStdioTransport())
}

// handleQuery runs one tool call. Internal failures are logged and
// answered with an empty array: the calling host gets a well-formed
// result either way.
func (s *Server) handleQuery(ctx context.Context, _ *sdk.ServerSession, params *sdk.CallToolParamsFor[queryArgs]) (*sdk.CallToolResultFor[[]domain.Match], error) {
	log := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("tool", toolName),
	)
	ctx = logger.ContextWithLogger(ctx, log)

	matches, err := s.pipeline.RunQuery(ctx, params.Arguments.Query, defaultTopK)
	if err != nil {
		metrics.ToolCallsTotal.WithLabelValues(toolName, "error").Inc()
		log.Error("query failed, answering with empty result",
			zap.String("query", params.Arguments.Query),
			zap.Error(err),
		)
		matches = []domain.Match{}
	} else {
		metrics.ToolCallsTotal.WithLabelValues(toolName, "success").Inc()
	}

	text, err := json.Marshal(matches)
	if err != nil {
		// Unreachable past the pipeline's serialization check.
		text = []byte("[]")
		matches = []domain.Match{}
	}

	return &sdk.CallToolResultFor[[]domain.Match]{
		Content:           []sdk.Content{&sdk.TextContent{Text: string(text)}},
		StructuredContent: matches,
	}, nil
}
