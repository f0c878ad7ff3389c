package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/laneviz/laneviz/internal/server"
	"github.com/laneviz/laneviz/pkg/cache"
	"github.com/laneviz/laneviz/pkg/pipeline"
	"github.com/laneviz/laneviz/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // Redis cache address; file cache if empty
	mongoURI  string // MongoDB URI for render history; in-memory if empty
	noCache   bool   // disable artifact caching
	config    string // explicit config file path
}

// newServeCmd creates the serve command that runs the HTTP render API.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache (file cache if unset)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for render history (in-memory if unset)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.addr == "" {
		opts.addr = cfg.Server.Addr
	}
	if opts.redisAddr == "" {
		opts.redisAddr = cfg.Server.RedisAddr
	}
	if opts.mongoURI == "" {
		opts.mongoURI = cfg.Server.MongoURI
	}

	c, err := buildServeCache(ctx, opts, cfg.Server)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	st, err := buildServeStore(ctx, opts, cfg.Server)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	srv := server.New(server.Config{Addr: opts.addr}, runner, st, logger)
	return srv.Start(ctx)
}

// buildServeCache picks the cache backend: Redis when configured, file
// cache otherwise, null cache with --no-cache.
func buildServeCache(ctx context.Context, opts *serveOpts, cfg ServerConfig) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return newCache(false), nil
}

// buildServeStore picks the render history backend: MongoDB when
// configured, in-memory otherwise.
func buildServeStore(ctx context.Context, opts *serveOpts, cfg ServerConfig) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      opts.mongoURI,
			Database: cfg.MongoDatabase,
		})
	}
	return store.NewMemoryStore(), nil
}
