package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/romandfa/internal/cli"
	httpAdapter "github.com/aretw0/romandfa/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the validation API over HTTP. With --watch, the definition file is reloaded
whenever it changes; a broken edit is logged and the previous automaton keeps serving.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("Error loading config", err)
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		watch, _ := cmd.Flags().GetBool("watch")
		if watch && cfg.Definition == "" {
			exitOnError("Error", errors.New("--watch requires --definition"))
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		engine, closeStore, err := cli.NewEngine(ctx, cli.EngineOptions{Config: cfg, Logger: logger, Registerer: reg})
		exitOnError("Error initializing engine", err)
		defer closeStore()

		handler, err := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(Version()),
			httpAdapter.WithMetrics(reg),
			httpAdapter.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		)
		exitOnError("Error initializing server", err)

		if watch {
			go func() {
				if err := cli.WatchDefinition(ctx, engine, cfg.Definition, logger); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Watcher stopped", "err", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting romandfa server", "addr", srv.Addr, "automaton", engine.Inspect().Name())
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			closeStore()
			exitOnError("Server error", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "err", err)
				}
			}
			fmt.Println("romandfa server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config, default localhost:8080)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the --definition file when it changes")
}
