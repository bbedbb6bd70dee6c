package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/anonymizer/pkg/api"
	"github.com/codeready-toolchain/anonymizer/pkg/cleanup"
	"github.com/codeready-toolchain/anonymizer/pkg/version"
)

// Swapped in tests.
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	httpPort := getEnv("HTTP_PORT", "8080")
	grpcHealthPort := os.Getenv("GRPC_HEALTH_PORT")

	slog.Info("Starting anonymizer",
		"version", version.GitCommit,
		"http_port", httpPort,
		"grpc_health_port", grpcHealthPort,
		"config_dir", configDir)

	a, err := bootstrap(ctx, configDir)
	if err != nil {
		return err
	}
	defer a.close()

	httpServer := api.NewServer(a.service)

	var retention *cleanup.Service
	if a.dbClient != nil {
		httpServer.SetDatabase(a.dbClient)
		retention = cleanup.NewService(a.cfg.History.Retention, a.history)
		retention.Start(ctx)
		defer retention.Stop()
	}

	errCh := make(chan error, 2)

	var grpcHealth *api.GRPCHealthServer
	if grpcHealthPort != "" {
		lis, err := net.Listen("tcp", ":"+grpcHealthPort)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC health port: %w", err)
		}
		grpcHealth = api.NewGRPCHealthServer()
		go func() {
			if err := grpcHealth.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC health server: %w", err)
			}
		}()
	}

	go func() {
		addr := ":" + httpPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	if grpcHealth != nil {
		grpcHealth.SetServing(true)
	}
	slog.Info("Anonymizer started successfully", "stats", a.cfg.Stats())

	runErr := awaitShutdown(ctx, errCh)

	if grpcHealth != nil {
		grpcHealth.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
	return runErr
}

// awaitShutdown blocks until SIGTERM/SIGINT, a server error or ctx
// cancellation, and returns the server error if that was the cause. Signal
// delivery is released before it returns.
func awaitShutdown(ctx context.Context, errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer stopSignals(sigCh)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
		return nil
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
		return err
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down")
		return nil
	}
}
