// Package server boots the storefront: configuration, database, cache,
// storage, background workers, event listeners, and finally the HTTP and
// gRPC listeners.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vastra/app/feed"
	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/event"
	pkggrpc "github.com/shashiranjanraj/vastra/pkg/grpc"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

const workerCount = 4

// Boot prepares every subsystem the handlers depend on. Must run before
// the HTTP handler is built.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		if err := logger.AttachMongo(uri, "vastra", "logs"); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching and sessions degraded", "error", err)
	}
	storage.Connect()

	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	jobs.Register()
	registerListeners()
	feed.Start()

	return nil
}

// registerListeners wires the domain events fired after order commits.
func registerListeners() {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		placed, ok := payload.(services.OrderPlacedEvent)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: placed.OrderID}); err != nil {
			logger.Error("dispatch order confirmation", "order_id", placed.OrderID, "error", err)
		}
	})

	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		status, ok := payload.(services.OrderStatusEvent)
		if !ok {
			return
		}
		feed.PublishStatus(status.UserID, status.OrderID, string(status.Status))
	})
}

// Start serves HTTP (and gRPC when configured) until SIGINT/SIGTERM, then
// drains in-flight requests and queue workers.
func Start(handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, workerCount)

	if port := config.GRPCPort(); port != "" {
		srv, lis, err := pkggrpc.Start(port)
		if err != nil {
			return err
		}
		defer pkggrpc.Stop(srv)
		defer lis.Close()
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	event.Flush()
	return nil
}
