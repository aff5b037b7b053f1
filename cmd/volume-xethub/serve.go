package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xetdata/docker-volume-xetfs/pkg/api"
	"github.com/xetdata/docker-volume-xetfs/pkg/config"
	"github.com/xetdata/docker-volume-xetfs/pkg/driver"
	"github.com/xetdata/docker-volume-xetfs/pkg/health"
	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/metrics"
	"github.com/xetdata/docker-volume-xetfs/pkg/mount"
	"github.com/xetdata/docker-volume-xetfs/pkg/storage"
)

const shutdownTimeout = 5 * time.Second

// serve runs the plugin until SIGINT or SIGTERM
func serve(cmd *cobra.Command, cfg *config.Config) error {
	logCfg := log.Config{JSONOutput: cfg.Log.JSON}
	if cfg.Log.Level != "" {
		logCfg.Level = log.ParseLevel(cfg.Log.Level)
	}
	log.Init(logCfg)
	metrics.SetVersion(Version)

	logger := log.WithComponent("main")
	logger.Info().
		Str("version", Version).
		Str("mount_root", cfg.MountRoot).
		Str("transport", cfg.Transport.Kind).
		Msg("Starting volume plugin")

	for _, dir := range []string{cfg.MountRoot, cfg.StateStorage} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := health.NewMonitor(health.DefaultConfig(), metrics.UpdateComponent)
	monitor.Add(metrics.ComponentMountRoot, health.NewDirChecker(cfg.MountRoot))
	monitor.Add(metrics.ComponentMountTool, health.NewExecChecker([]string{cfg.Mounter.MountBinary, "--version"}))
	monitor.CheckAll(ctx)
	if status, _ := monitor.Status(metrics.ComponentMountTool); !status.LastResult.Healthy {
		logger.Warn().
			Str("binary", cfg.Mounter.MountBinary).
			Str("error", status.LastResult.Message).
			Msg("Mount tool is not runnable; mounts will fail until it is installed")
	}
	go monitor.Run(ctx)

	store := storage.NewMemoryStore()
	d := driver.NewDriver(cfg.MountRoot, store, mount.NewMounter(cfg.Mounter))
	srv := api.NewServer(d)

	switch cfg.Transport.Kind {
	case config.TransportUnix:
		if err := srv.ListenUnix(cfg.Transport.SocketPath, cfg.Transport.SocketGroup); err != nil {
			return err
		}
	default:
		if err := srv.ListenTCP(cfg.ListenAddr()); err != nil {
			return err
		}
	}

	errCh := make(chan error, 2)
	go func() {
		if err := srv.Serve(); err != nil {
			errCh <- fmt.Errorf("plugin server error: %w", err)
		}
	}()

	var admin *api.HealthServer
	if cfg.MetricsAddr != "" {
		admin = api.NewHealthServer(store, Version)
		go func() {
			if err := admin.Start(cfg.MetricsAddr); err != nil {
				errCh <- fmt.Errorf("admin server error: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("Server failed")
	}

	if err := srv.Stop(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close plugin listener")
	}
	if admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := admin.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to stop admin server")
		}
	}

	logger.Info().Msg("Shutdown complete")
	return runErr
}
