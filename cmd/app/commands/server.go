package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/viralspark/gateway/internal/app"
	"github.com/viralspark/gateway/internal/config"
)

// RunServer starts the HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container, bootstraps the capability
// registry, and starts the Gin HTTP server. Blocks until receiving
// SIGINT/SIGTERM or encountering a fatal error. On shutdown signal, gracefully
// stops the servers within DBConnMaxLifetime timeout.
func RunServer(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// Get Metrics server from container
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load the capability registry before accepting traffic. The gate denies
	// everything until the snapshot exists.
	capabilityUseCase, err := container.CapabilityUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize capability use case: %w", err)
	}
	if err := capabilityUseCase.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap capability registry: %w", err)
	}

	// Get the billing consumer from container (nil when billing events are disabled)
	billingConsumer, err := container.BillingConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize billing consumer: %w", err)
	}

	// Start servers under an errgroup. The group context cancels on the first
	// failure, so a signal and a server error share one shutdown path.
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	if billingConsumer != nil {
		group.Go(func() error {
			if err := billingConsumer.Start(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("billing consumer error: %w", err)
			}
			return nil
		})
	}

	// Wait for a shutdown signal or the first server failure.
	<-groupCtx.Done()
	if ctx.Err() != nil {
		logger.Info("shutdown signal received")
	} else {
		logger.Error("server error, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
	defer shutdownCancel()

	var shutdownErrors []error

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if billingConsumer != nil {
		if err := billingConsumer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("billing consumer shutdown: %w", err))
		}
	}

	// Shutdown unblocks the Start calls, so the goroutines have finished once
	// Wait returns. A nil Wait error means the servers closed cleanly.
	if err := group.Wait(); err != nil {
		shutdownErrors = append([]error{err}, shutdownErrors...)
	}

	if len(shutdownErrors) > 0 {
		return errors.Join(shutdownErrors...)
	}

	return nil
}
