package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regiongen/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noHistory bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long: `Serve the generator over HTTP until interrupted.

Routes:
  GET  /healthz
  POST /v1/generate
  GET  /v1/render.png
  GET  /v1/runs
  GET  /v1/runs/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.config.Server.Addr != "" {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer runner.Close()

			var srv *server.Server
			if noHistory {
				srv = server.New(runner, nil, c.Logger)
			} else {
				store, err := c.newHistory(ctx)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
				srv = server.New(runner, store, c.Logger)
			}

			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record runs")
	return cmd
}
