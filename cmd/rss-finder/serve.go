// ABOUTME: Serve command runs the feed discovery HTTP API
// ABOUTME: Wires config, logger, cache, metrics and handlers, and shuts down gracefully

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgacode/rss-finder/api"
	"github.com/sgacode/rss-finder/api/handlers"
	"github.com/sgacode/rss-finder/api/middleware"
	"github.com/sgacode/rss-finder/core/discovery"
	"github.com/sgacode/rss-finder/core/fetch"
	"github.com/sgacode/rss-finder/core/interfaces"
	"github.com/sgacode/rss-finder/core/validate"
	"github.com/sgacode/rss-finder/infrastructure/feedparser"
	"github.com/sgacode/rss-finder/infrastructure/http/standard"
	"github.com/sgacode/rss-finder/infrastructure/logger"
	"github.com/sgacode/rss-finder/pkg/config"
	"github.com/sgacode/rss-finder/pkg/metrics"
)

func newServeCommand(f *cliFlags, stderr io.Writer) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the feed discovery HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
				cfg.Log.Level = f.logLevel
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, closeLog, err := logger.New(cfg.Log, logger.BackendZap, stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8000", "Port to listen on")

	return cmd
}

// newHandler assembles the discovery engine and the HTTP API around it.
// The returned function stops the rate limiter.
func newHandler(cfg *config.Config, log interfaces.Logger, cache interfaces.Cache) (http.Handler, func(), error) {
	heuristics, err := config.LoadHeuristics(cfg.Search.HeuristicsFile)
	if err != nil {
		return nil, nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	if err := limiter.TrustProxies(cfg.Server.TrustedProxies); err != nil {
		limiter.Stop()
		return nil, nil, err
	}

	m := metrics.NewMetrics()

	deps := interfaces.Dependencies{
		HTTPClient: standard.NewStandardHTTPClient(
			standard.WithUserAgent(cfg.Search.UserAgent),
			standard.WithLogger(log),
		),
		FeedParser: feedparser.NewGofeedParser(),
		Cache:      cache,
		Logger:     log,
	}

	fetcher := fetch.NewFetcher(deps)
	validator := m.InstrumentValidator(validate.NewValidator(deps, fetcher, validate.WithCacheTTL(cfg.Cache.TTL)))
	service := m.InstrumentService(discovery.NewService(deps, heuristics,
		discovery.WithFetcher(fetcher),
		discovery.WithValidator(validator),
	))

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:      log,
		RateLimiter: limiter,
		Metrics:     m.Handler(),
	})

	handlers.RegisterHealth(humaAPI)
	handlers.NewDiscoverHandler(service, cfg.Search.Options(), cfg.Server.MaxBatch, log).RegisterRoutes(humaAPI)

	return router, limiter.Stop, nil
}

func serve(ctx context.Context, cfg *config.Config, log interfaces.Logger) error {
	log.Info("Starting RSS Finder API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	cache, closeCache := newCache(cfg.Cache, log)
	defer closeCache()

	handler, stopLimiter, err := newHandler(cfg, log, cache)
	if err != nil {
		return err
	}
	defer stopLimiter()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	log.Info("Server stopped", nil)
	return nil
}
