package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mindscreen/internal/app"
	"mindscreen/internal/config"
	"mindscreen/internal/logging"
)

var version = "0.1.0"

const shutdownTimeout = 30 * time.Second

func main() {
	var configPath, port string

	root := &cobra.Command{
		Use:           "mindscreen-server",
		Short:         "PHQ-9 / GAD-7 screening, supportive chat and mood prediction over HTTP",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.HTTPPort = port
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "initializing application")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(log.Fields{
			"addr":    srv.Addr,
			"version": version,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "listening")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Hijacked WebSocket connections are not tracked by Shutdown.
		closeErr := a.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		return closeErr
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
