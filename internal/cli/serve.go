package cli

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/server"
	"github.com/matzehuels/mazegen/pkg/store"
)

type serveOpts struct {
	addr         string
	maxDimension int
	timeout      time.Duration
	noCache      bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve maze generation over HTTP.

Mazes created with POST /v1/mazes are archived in MongoDB when
archive.mongo_uri is configured, otherwise in memory for the lifetime of the
process. Generated mazes are cached with the configured cache backend; with
the redis backend several replicas can share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().IntVar(&opts.maxDimension, "max-dimension", 0, "largest accepted width or height (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg := c.Config.Server
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.maxDimension != 0 {
		cfg.MaxDimension = opts.maxDimension
	}

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetGenerationHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	archive, err := c.connectStore(ctx)
	if err != nil {
		return err
	}
	defer archive.Close()

	srv := server.New(runner, archive, server.Config{
		Addr:           cfg.Addr,
		MaxDimension:   cfg.MaxDimension,
		RequestTimeout: opts.timeout,
		Logger:         c.Logger,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		c.Logger.Info("server stopped")
	}
	return nil
}

// connectStore opens the archive, showing a spinner while a remote
// database is contacted.
func (c *CLI) connectStore(ctx context.Context) (store.Store, error) {
	if c.Config.Archive.MongoURI == "" {
		c.Logger.Warn("archive is in memory; archived mazes are lost on exit")
		return c.newStore(ctx)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	spin := newSpinnerWithContext(connectCtx, "Connecting to MongoDB...")
	spin.Start()
	s, err := c.newStore(connectCtx)
	if err != nil {
		spin.StopWithError("MongoDB unavailable")
		return nil, err
	}
	spin.StopWithSuccess("Connected to MongoDB")
	return s, nil
}
