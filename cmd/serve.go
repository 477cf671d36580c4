package cmd

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

	"github.com/staffbook/staffql/internal/config"
	"github.com/staffbook/staffql/internal/graph"
	"github.com/staffbook/staffql/internal/search"
	"github.com/staffbook/staffql/internal/server"
	"github.com/staffbook/staffql/internal/store/filestore"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries
  - Health check at /healthz

Examples:
  # Start server on the configured port (default 5000)
  staffql serve

  # Start server on a custom port against a local bolt database
  staffql serve --port 3000 --store bolt://staff.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	resolver, err := newResolver(ctx, true)
	if err != nil {
		return err
	}
	defer resolver.Index.Close()

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fs, ok := core.(*filestore.Store); ok {
		if err := fs.Watch(); err != nil {
			return fmt.Errorf("watching %s: %w", fs.Root(), err)
		}
		defer fs.Unwatch()

		events, unsubscribe := fs.Subscribe()
		defer unsubscribe()
		go syncIndex(ctx, resolver, events)
	}

	es := graph.NewExecutableSchema(graph.Config{Resolvers: resolver})
	router := server.NewRouter(es, core, logger)
	srv := server.NewHTTPServer(cfg.Server.Port, router)

	// Channel to listen for server errors
	serverErr := make(chan error, 1)

	go func() {
		logger.Info(ctx, "server starting",
			"addr", srv.Addr,
			"graphql", fmt.Sprintf("http://localhost:%d%s", cfg.Server.Port, server.GraphQLPath),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info(shutdownCtx, "server stopped")
	}

	return nil
}

// syncIndex applies on-disk changes seen by the file store watcher to the
// search index until ctx is done or the subscription closes.
func syncIndex(ctx context.Context, r *graph.Resolver, events <-chan []filestore.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-events:
			if !ok {
				return
			}
			applyEvents(ctx, r.Index, batch)
		}
	}
}

func applyEvents(ctx context.Context, idx *search.Index, batch []filestore.Event) {
	for _, ev := range batch {
		if ev.Collection != filestore.EmployeesDir {
			continue
		}

		var err error
		switch ev.Type {
		case filestore.EventCreated, filestore.EventUpdated:
			if ev.Employee != nil {
				err = idx.IndexEmployee(ev.Employee)
			}
		case filestore.EventDeleted:
			err = idx.DeleteEmployee(ev.ID)
		}
		if err != nil {
			logger.Warn(ctx, "search index update failed", "id", ev.ID, "event", ev.Type.String(), "error", err)
		}
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", config.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
