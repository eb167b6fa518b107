package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/pathwalk/pathwalk/internal/observability"
	"github.com/pathwalk/pathwalk/internal/server"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var listenOverride string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve path operations over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if listenOverride != "" {
				cfg.Server.Listen = listenOverride
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&listenOverride, "listen", "", "Override server.listen")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	srv, err := server.New(cfg, log)
	if err != nil {
		return err
	}

	if cfg.Logging.OpLog != "" {
		path := cfg.ResolvePath(cfg.Logging.OpLog)
		logger, closer, err := logging.OpenOpLog(path)
		if err != nil {
			return err
		}
		defer func() { _ = closer() }()
		srv.SetOpLogger(logger)
		log.Info().Str("path", path).Msg("writing op log")
	}

	metricsSrv := startMetricsServer(cfg, srv, log)
	defer func() {
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(context.Background())
		}
	}()

	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if cfg.Server.TLS.Enabled {
			serverErr <- httpSrv.ListenAndServeTLS(cfg.ResolvePath(cfg.Server.TLS.CertFile), cfg.ResolvePath(cfg.Server.TLS.KeyFile))
			return
		}
		serverErr <- httpSrv.ListenAndServe()
	}()

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.PruneLoop(signalCtx, time.Minute)

	log.Info().
		Str("listen", cfg.Server.Listen).
		Str("style", string(cfg.Style)).
		Bool("tls", cfg.Server.TLS.Enabled).
		Msg("serving")

	select {
	case <-signalCtx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func startMetricsServer(cfg *config.Config, srv *server.Server, log zerolog.Logger) *http.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	srv.SetMetrics(metrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	metricsSrv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	return metricsSrv
}
