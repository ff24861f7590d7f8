package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrtile/internal/server"
	"github.com/matzehuels/qrtile/pkg/pipeline"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr      string
	maxExtent float64
	timeout   time.Duration
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts
	d := defaultFileConfig().Server

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering server",
		Long: `Serve exposes rendering over HTTP:

  GET /healthz
  GET /v1/qr?text=...&width=&height=&backend=&fg=&bg=&level=&version=&border=&format=&title=

Artifacts are cached in Redis when [cache] redis_url is configured and in
the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sc := c.config.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				sc.Addr = opts.addr
			}
			if flags.Changed("max-extent") {
				sc.MaxExtent = opts.maxExtent
			}
			if flags.Changed("timeout") {
				sc.Timeout = opts.timeout
			}

			defaults, err := c.config.Render.pipelineConfig()
			if err != nil {
				return err
			}

			store, keyer, err := c.newServerCache(ctx, opts.noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, keyer, logger)
			defer runner.Close()

			srv, err := server.New(runner, logger,
				server.WithDefaults(defaults),
				server.WithMaxExtent(sc.MaxExtent),
				server.WithTimeout(sc.Timeout))
			if err != nil {
				return err
			}

			printInfo("Serving on %s", StyleHighlight.Render(sc.Addr))
			return srv.ListenAndServe(ctx, sc.Addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", d.Addr, "listen address")
	cmd.Flags().Float64Var(&opts.maxExtent, "max-extent", d.MaxExtent, "largest accepted width or height in pixels")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", d.Timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
