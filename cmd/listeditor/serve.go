package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"listeditor/internal/config"
	"listeditor/internal/handler"
	"listeditor/internal/hub"
	"listeditor/internal/layout"
	"listeditor/internal/logical"
	"listeditor/internal/repository/sqlite"
	"listeditor/internal/service"
	"listeditor/internal/watcher"
)

const (
	// seedListID names the list a seed file is loaded into
	seedListID   = "default"
	seedListName = "Default"

	shutdownTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "HTTP listen address")
	f.String("db", "", "SQLite database path")
	f.String("layout", "", "layout strategy for new lists (list, grid)")
	f.String("seed", "", "records file loaded into the default list at startup")
	f.Bool("watch", false, "reload the seed file when it changes")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (text, json)")
	return cmd
}

// loadConfig reads the config file and applies flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, _, err = config.LoadFromPath(path)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"addr":       &cfg.Server.Addr,
		"db":         &cfg.Database.Path,
		"layout":     &cfg.Layout.Strategy,
		"seed":       &cfg.Seed.Path,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if cmd.Flags().Changed("watch") {
		cfg.Seed.Watch, _ = cmd.Flags().GetBool("watch")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// strategyFactory gives every new list its own position strategy
func strategyFactory(cfg config.LayoutConfig) service.StrategyFactory {
	return func() (logical.PositionManager, error) {
		return layout.New(cfg.Strategy, layout.Options{Padding: cfg.Padding, Columns: cfg.Columns})
	}
}

// newRouter mounts the API, event stream and operational endpoints
func newRouter(svc *service.ListService, events http.Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	handler.NewListHandler(svc, logger).Register(mux)
	mux.Handle("GET /events", events)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", handler.Health)

	return handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger),
	)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting listeditor", "version", version)
	logger.Info("effective config", "summary", cfg.Summary())

	// Fail fast on a bad layout before accepting requests
	if _, err := strategyFactory(cfg.Layout)(); err != nil {
		return err
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	bus := service.NewEventBus()
	sse := hub.New(logger.With("component", "hub"))
	go sse.Run(ctx)
	go sse.Relay(ctx, bus)

	svc := service.NewListService(repo, bus, strategyFactory(cfg.Layout), service.WithLogger(logger.With("component", "service")))

	if cfg.Seed.Path != "" {
		seeder := watcher.NewSeeder(svc, cfg.Seed.Path, seedListID, seedListName, logger)
		if _, err := seeder.Load(ctx); err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		if cfg.Seed.Watch {
			w := watcher.New(cfg.Seed.Path, seeder.Reload, logger.With("component", "watcher"))
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("seed watcher stopped", "error", err)
				}
			}()
		}
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(svc, sse, logger),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
