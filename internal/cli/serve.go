package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlehnert/placard/pkg/cache"
	"github.com/mlehnert/placard/pkg/pipeline"
	"github.com/mlehnert/placard/pkg/server"
	"github.com/mlehnert/placard/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		storeDir  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server exposes the layout pipeline over HTTP: POST a JSON scene to
/v1/layouts for a one-shot layout, or use /v1/documents to save named
layouts. Without --mongo-uri or --store-dir, documents are stored under
the local data directory.

Caching uses Redis when --redis is set, otherwise the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, storeDir, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongodb connection URI for document storage")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for file-based document storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache and store backends and serves until ctx ends.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI, storeDir string, noCache bool) error {
	ca, err := c.newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ca, c.Logger)
	defer runner.Close()

	st, err := c.newServeStore(ctx, mongoURI, storeDir)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, st, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// newServeCache picks the cache backend: redis when configured, the local
// file cache otherwise.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		ca, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Debug("using redis cache", "addr", redisAddr)
		return ca, nil
	}
	return newCache(false)
}

// newServeStore picks the document store backend: mongo when configured, a
// file store otherwise. The default directory is the XDG data dir.
func (c *CLI) newServeStore(ctx context.Context, mongoURI, storeDir string) (store.Store, error) {
	if mongoURI != "" {
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Debug("using mongodb store")
		return st, nil
	}

	dir := storeDir
	if dir == "" {
		var err error
		dir, err = dataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
	}
	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dir, err)
	}
	c.Logger.Debug("using file store", "dir", dir)
	return st, nil
}
