package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	vhttp "github.com/aretw0/vizscript/pkg/adapters/http"
	"github.com/aretw0/vizscript/pkg/adapters/mcp"
	"github.com/aretw0/vizscript/pkg/observability"
)

// Serve exposes env over HTTP on addr until ctx is cancelled.
// metrics may be nil; it must already listen on the engine queue.
func Serve(ctx context.Context, env *Env, addr string, metrics *observability.Metrics, out io.Writer) error {
	opts := []vhttp.Option{
		vhttp.WithLibrary(env.Library),
		vhttp.WithLogger(env.Logger),
	}
	if metrics != nil {
		opts = append(opts, vhttp.WithMetrics(metrics.Handler()))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           vhttp.NewHandler(env.Engine, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "vizscript server listening on %s", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(out, "vizscript server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, env *Env, transport, addr string) error {
	srv := mcp.NewServer(env.Engine,
		mcp.WithLibrary(env.Library),
		mcp.WithLogger(env.Logger),
	)

	switch transport {
	case "stdio":
		env.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		env.Logger.Info("starting MCP server (SSE)", "addr", addr)
		return srv.ServeSSE(ctx, addr)
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
