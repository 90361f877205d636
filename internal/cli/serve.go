package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/countrydex/internal/config"
	"github.com/rshade/countrydex/internal/logging"
	"github.com/rshade/countrydex/internal/source"
	"github.com/rshade/countrydex/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the "serve" command hosting the browser UI.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the country browser over HTTP",
		Long: `Starts an HTTP server with the list page at / and detail pages at
/countries/{code}. The dataset is fetched once in the background; until it
arrives every page shows "Loading...".

JSON endpoints live under /api, health under /healthz and Prometheus metrics
under /metrics.`,
		Example: `  # Serve on the configured address (default :8080)
  countrydex serve

  # Serve a saved dataset on another port
  countrydex serve --addr :9000 --source ./all.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = config.GetGlobalConfig().Server.Addr
			}
			return executeServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "address to listen on")

	return cmd
}

func executeServe(cmd *cobra.Command, addr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.New(web.Options{Logger: *logging.FromContext(ctx)})
	loader := source.NewOnce(newLoader(ctx))
	httpSrv := web.NewHTTPServer(addr, srv.Router())

	return runServer(ctx, httpSrv, func(ctx context.Context) error {
		return srv.LoadCatalog(ctx, loader.Load)
	})
}

// runServer runs load and the HTTP server side by side until ctx is done or
// the server fails. Cancellation is a clean exit.
func runServer(ctx context.Context, httpSrv *http.Server, load func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return load(gctx)
	})

	g.Go(func() error {
		logger.Info().Ctx(ctx).Str("addr", httpSrv.Addr).Msg("serving country browser")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", httpSrv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info().Ctx(ctx).Msg("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
