package main

import (
	"context"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/cli"
	"github.com/aretw0/vizscript/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Exposes the engine over a JSON API: POST /commands, GET /status, /history,
/actions, /events (SSE), the /scripts library and, unless disabled, /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			metrics *observability.Metrics
			extra   []vizscript.Option
		)
		noMetrics, _ := cmd.Flags().GetBool("no-metrics")
		if !noMetrics {
			metrics = observability.NewMetrics()
			extra = append(extra, vizscript.WithStatusListener(metrics.Listener()))
		}

		env, err := loadEnv(cmd, extra...)
		if err != nil {
			return err
		}
		defer env.Close()

		if !env.Config.Metrics.Enabled {
			metrics = nil
		}
		addr := env.Config.HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Serve(sigCtx, env, addr, metrics, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
}
