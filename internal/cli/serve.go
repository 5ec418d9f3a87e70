package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/internal/config"
	"github.com/specatlas/specatlas/internal/server"
	"github.com/specatlas/specatlas/pkg/cache"
	"github.com/specatlas/specatlas/pkg/share"
	"github.com/specatlas/specatlas/pkg/store"
	"github.com/specatlas/specatlas/pkg/view"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the exploration HTTP API",
		Long: `Serve the exploration HTTP API.

Backends for graph storage (file, mongo), layout caching (file, redis, none),
and share links (memory, file, redis) are selected in the config file. Flags
override the listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	graphs, err := newGraphStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize graph store: %w", err)
	}
	defer graphs.Close(context.Background())

	layoutCache, err := newLayoutCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	shares, err := newShareStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize share store: %w", err)
	}

	runner := view.NewRunner(layoutCache, nil, c.Logger)
	runner.Layout = cfg.Layout.Options()
	defer runner.Close()

	srv := server.New(cfg.Server, graphs, shares, runner, c.Logger)
	srv.ShareTTL = cfg.Share.TTL.Duration

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Backend,
		"cache", cfg.Cache.Backend,
		"shares", cfg.Share.Backend)
	return srv.Start(ctx)
}

// =============================================================================
// Backend Factories
// =============================================================================

func newGraphStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return store.NewFileStore(cfg.Dir)
	}
}

func newLayoutCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return cache.NewFileCache(cfg.Dir)
	}
}

func newShareStore(ctx context.Context, cfg config.Config) (share.Store, error) {
	switch cfg.Share.Backend {
	case "file":
		return share.NewFileStore(cfg.Share.Dir)
	case "redis":
		// Share links ride on the cache Redis connection settings.
		return share.NewRedisStore(ctx, share.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	default:
		return share.NewMemoryStore(), nil
	}
}
