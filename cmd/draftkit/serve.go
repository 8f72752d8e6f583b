package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/draftkit/internal/cli"
	httpAdapter "github.com/aretw0/draftkit/pkg/adapters/http"
	"github.com/aretw0/draftkit/pkg/surface"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editing server",
	Long: `Starts the draftkit engine behind a JSON API over HTTP, with server-sent
events for document updates and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		reg := prometheus.NewRegistry()
		engine, closeStore, err := cli.CreateEngine(cli.EngineOptions{
			Config:     cfg,
			Logger:     logger,
			Registerer: reg,
		})
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := context.Background()
		editor := surface.New(ctx, engine, surface.WithLogger(logger))

		mux := http.NewServeMux()
		mux.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/", httpAdapter.NewHandler(editor, engine.Document(), httpAdapter.WithLogger(logger)))

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting draftkit server", "addr", srv.Addr, "store", cfg.Store.Driver, "metrics", cfg.Server.MetricsPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			// Flush the last state explicitly before the store closes.
			if err := editor.Save(context.Background()); err != nil {
				logger.Warn("Final save failed", "error", err)
			}
			logger.Info("draftkit server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides server.addr)")
}
