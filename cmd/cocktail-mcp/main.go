package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/config"
	"github.com/Orio77/coctail-mcp/internal/db"
	"github.com/Orio77/coctail-mcp/internal/db/redis"
	"github.com/Orio77/coctail-mcp/internal/logger"
	"github.com/Orio77/coctail-mcp/internal/metrics"
	"github.com/Orio77/coctail-mcp/internal/repository/catalog"
	"github.com/Orio77/coctail-mcp/internal/repository/vector"
	"github.com/Orio77/coctail-mcp/internal/transport/mcp"
	"github.com/Orio77/coctail-mcp/internal/transport/openai"
	"github.com/Orio77/coctail-mcp/internal/usecase/embedding"
	"github.com/Orio77/coctail-mcp/internal/usecase/ingest"
	"github.com/Orio77/coctail-mcp/internal/usecase/rag"
	"github.com/Orio77/coctail-mcp/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "cocktail-mcp",
		Short:         "Cocktail recommendation tool server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		ingestCmd(),
		clearCmd(),
		statsCmd(),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds the wired dependencies shared by all subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.Store
}

// bootstrap loads configuration, builds the logger, and connects to
// the vector store.
func bootstrap(ctx context.Context) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store, err := redis.NewStore(redis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect vector store: %w", err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("vector store not ready: %w", err)
	}

	log.Info("connected to vector store",
		zap.String("env", env),
		zap.Strings("addrs", cfg.Database.Addrs),
	)
	return &app{cfg: cfg, logger: log, store: store}, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func (a *app) provider() *openai.Provider {
	return openai.NewProvider(&openai.Config{
		APIKey:     a.cfg.Embedding.APIKey,
		BaseURL:    a.cfg.Embedding.BaseURL,
		Dimensions: a.cfg.Embedding.Dimensions,
		Logger:     a.logger,
	})
}

func (a *app) searchGateway() *vector.Repo {
	return vector.New(a.store, a.cfg.Index.Name, a.cfg.Index.KeyPrefix, a.logger)
}

func (a *app) embedGateway() *embedding.Gateway {
	return embedding.New(a.provider(), a.cfg.Embedding.Model, a.logger)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the rag_cocktails tool over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			metrics.Register()

			if err := a.store.EnsureIndex(ctx, &db.IndexDefinition{
				Name:       a.cfg.Index.Name,
				KeyPrefix:  a.cfg.Index.KeyPrefix,
				Dimensions: a.cfg.Embedding.Dimensions,
			}); err != nil {
				return fmt.Errorf("ensure index: %w", err)
			}

			provider := a.provider()
			if err := provider.HealthCheck(ctx); err != nil {
				a.logger.Warn("embedding provider health check failed", zap.Error(err))
			}

			if a.cfg.Metrics.Enabled {
				srv := metrics.NewServer(a.cfg.Metrics.Port)
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						a.logger.Error("metrics server failed", zap.Error(err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			pipeline := rag.New(
				embedding.New(provider, a.cfg.Embedding.Model, a.logger),
				a.searchGateway(),
				a.logger,
			)
			return mcp.NewServer(pipeline, a.logger).Run(ctx)
		},
	}
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Embed the cocktail catalog and load it into the vector index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			metrics.Register()

			if err := a.store.EnsureIndex(ctx, &db.IndexDefinition{
				Name:       a.cfg.Index.Name,
				KeyPrefix:  a.cfg.Index.KeyPrefix,
				Dimensions: a.cfg.Embedding.Dimensions,
			}); err != nil {
				return fmt.Errorf("ensure index: %w", err)
			}

			svc := ingest.New(
				catalog.New(a.cfg.Catalog.DataPath, a.logger),
				a.embedGateway(),
				a.searchGateway(),
				a.logger,
			)
			summary, err := svc.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("ingested %d cocktails and %d ingredients (%d skipped)\n",
				summary.Cocktails, summary.Ingredients, summary.Skipped)
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all vectors from the index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			metrics.Register()

			if err := a.searchGateway().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("index cleared")
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report the index vector count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			metrics.Register()

			count, err := a.searchGateway().Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("total vectors: %d\n", count)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("cocktail-mcp %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
