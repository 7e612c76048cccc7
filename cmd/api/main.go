package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/pintwise/pintwise/internal/rest"
	"github.com/pintwise/pintwise/internal/setup"
	"github.com/pintwise/pintwise/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// APILogDir specifies where API server log files are stored.
const APILogDir = "logs/api_logs"

// Server timeouts.
const (
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 15 * time.Second
	IdleTimeout            = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

func main() {
	app := &cli.Command{
		Name:  "api",
		Usage: "Serve the pintwise REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-dir",
				Value: APILogDir,
				Usage: "Directory for log sessions",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("log-dir"))
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, logDir string) error {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, telemetry.ServiceAPI, logDir)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.Background())

	cfg := &app.Config.API

	// Create server
	server, err := rest.NewServer(rest.ServicesFrom(app.DB.Service()), rest.Options{
		Config:  cfg,
		Metrics: app.Metrics,
		Health: func(ctx context.Context) error {
			if err := app.DB.DB().PingContext(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			return app.RedisManager.Ping(ctx)
		},
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create REST server: %w", err)
	}
	defer server.Close()

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("API server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		app.Logger.Error("Server failed", zap.Error(err))
		return err
	}

	app.Logger.Info("Shutting down API server...")

	shutdownTimeout := DefaultShutdownTimeout
	if cfg.Server.ShutdownTimeout > 0 {
		shutdownTimeout = time.Duration(cfg.Server.ShutdownTimeout) * time.Millisecond
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")
	return nil
}
