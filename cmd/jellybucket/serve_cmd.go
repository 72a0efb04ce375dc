package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Nomadcxx/jellybucket/internal/api"
	"github.com/Nomadcxx/jellybucket/internal/config"
	"github.com/Nomadcxx/jellybucket/internal/logging"
	"github.com/Nomadcxx/jellybucket/internal/watcher"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bucket lookups over HTTP",
		Long: `Start an HTTP server so a tagging pipeline can look up buckets without
spawning a process per file.

Endpoints:
  GET /health
  GET /api/v1/bucket?value=1983[&field=year|alpha]
  GET /api/v1/buckets

When server.watch_config is set, edits to the config file are picked up
without a restart. A config with invalid buckets is rejected and the previous
buckets stay in service.

Examples:
  jellybucket serve
  jellybucket serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			return runServe(cmd, e, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default: server.addr from config)")

	return cmd
}

func runServe(cmd *cobra.Command, e *env, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(e.set, e.logger)

	if e.cfg.Server.WatchConfig && e.cfg.Exists() {
		reload := func() error {
			cfg, err := config.Load(e.cfg.Path())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("extrapolate") {
				cfg.Bucket.Extrapolate = extrapolate
			}
			set, err := cfg.Buckets(e.logger)
			if err != nil {
				return err
			}
			server.SetBuckets(set)
			return nil
		}

		w, err := watcher.New(e.cfg.Path(), reload, watcher.WithLogger(e.logger))
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer w.Close()

		go func() {
			if err := w.Run(ctx); err != nil {
				e.logger.Error("serve", "Config watcher stopped", err)
			}
		}()
	}

	e.logger.Info("serve", "Serving bucket lookups",
		logging.F("addr", addr),
		logging.F("year_buckets", len(e.cfg.Bucket.Year)),
		logging.F("alpha_buckets", len(e.cfg.Bucket.Alpha)))

	return server.ListenAndServe(ctx, addr)
}
