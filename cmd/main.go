package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"temple-eats/internal/config"
	"temple-eats/internal/database"
	"temple-eats/internal/logger"
	"temple-eats/internal/messaging"
	"temple-eats/internal/services/fulfillment"
	"temple-eats/internal/services/notification"
	"temple-eats/internal/services/order"
	"temple-eats/internal/services/tracking"
)

func main() {
	var (
		mode         = flag.String("mode", "", "Service mode (order-service, fulfillment-worker, tracking-service, notification-subscriber)")
		port         = flag.Int("port", 3000, "HTTP port")
		configPath   = flag.String("config", "config.yaml", "Path to configuration file")
		workerName   = flag.String("worker-name", "", "Worker name (required for fulfillment-worker mode)")
		stepInterval = flag.Int("step-interval", 10, "Seconds between order status advances")
		prefetch     = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		if err := runOrderService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Order service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "fulfillment-worker":
		if *workerName == "" {
			log.Error("validation_failed", "worker-name is required for fulfillment-worker mode", requestID, nil, nil)
			os.Exit(1)
		}
		if err := runFulfillmentWorker(ctx, cfg, log, *workerName, *stepInterval, *prefetch); err != nil {
			log.Error("service_failed", "Fulfillment worker failed", requestID, err, nil)
			os.Exit(1)
		}
	case "tracking-service":
		if err := runTrackingService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Tracking service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService runs the order service
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	service := order.NewService(db, publisher, log, cfg)
	handler := order.NewHandler(service, log)

	return serveHTTP(ctx, log, "Order Service", port, handler.SetupRoutes())
}

// runFulfillmentWorker runs the fulfillment worker
func runFulfillmentWorker(ctx context.Context, cfg *config.Config, log *logger.Logger, workerName string, stepInterval, prefetch int) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.FulfillmentQueue, workerName, prefetch)
	publisher := messaging.NewPublisher(conn, log)

	worker := fulfillment.NewWorker(workerName, time.Duration(stepInterval)*time.Second, prefetch, db, consumer, publisher, log)
	return worker.Start(ctx)
}

// runTrackingService runs the tracking service
func runTrackingService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	service := tracking.NewService(db, log)
	handler := tracking.NewHandler(service, log)

	return serveHTTP(ctx, log, "Tracking Service", port, handler.SetupRoutes())
}

// runNotificationSubscriber runs the notification subscriber
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	return subscriber.Start(ctx)
}

// serveHTTP runs an HTTP server until the context is cancelled
func serveHTTP(ctx context.Context, log *logger.Logger, name string, port int, mux *http.ServeMux) error {
	requestID := logger.GenerateRequestID()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
