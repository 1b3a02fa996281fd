package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restaurant-menu/internal/config"
	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/messaging"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/queue"
	"restaurant-menu/internal/services/catalog"
	"restaurant-menu/internal/services/order"
	"restaurant-menu/internal/storage"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (menu-service, demo)")
		port       = flag.Int("port", 3000, "HTTP port")
		configFile = flag.String("config", "config.yaml", "Path to the YAML config file")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(*mode, logger.Options{
		Level:    cfg.App.LogLevel,
		FilePath: cfg.App.LogFile,
	})
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":           *mode,
		"storage_driver": cfg.Storage.Driver,
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
	case "menu-service":
		err = runMenuService(ctx, cfg, log, *port)
	case "demo":
		err = runDemo(ctx, cfg, log)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runMenuService serves the catalog and order API until ctx is cancelled
func runMenuService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	menuCatalog, err := menu.NewCatalog(ctx, store, cfg.Storage.Location, log)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}

	var publisher order.Publisher
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		p := messaging.NewPublisher(conn, log)
		defer p.Close()
		publisher = p

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
	}

	orderService := order.NewService(menuCatalog, queue.New(), publisher, log)

	mux := http.NewServeMux()
	catalog.NewHandler(menuCatalog, log).Register(mux)
	order.NewHandler(orderService, log).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("service_started", fmt.Sprintf("Menu service started on port %d", port), requestID, map[string]interface{}{
			"port":     port,
			"location": menuCatalog.Location(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runDemo adds a beverage to the catalog, then builds, queues and processes one order
func runDemo(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	menuCatalog, err := menu.NewCatalog(ctx, store, cfg.Storage.Location, log)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}

	cola := models.NewBeverage("Coca Cola", 5, "Mediano", 5)
	if err := menuCatalog.AddItem(ctx, cola, "Beverages"); err != nil {
		return fmt.Errorf("failed to add demo item: %w", err)
	}

	o := models.NewOrder()
	o.Customer = "demo"
	o.Number = models.GenerateOrderNumber(time.Now().UTC(), 1)
	o.AppendItem(cola)

	q := queue.New()
	q.AddOrder(o)

	next, ok := q.ProcessNextOrder()
	if !ok {
		return errors.New("order queue unexpectedly empty")
	}

	names := make([]string, 0, next.Len())
	for entry := range next.All() {
		names = append(names, entry.Details().Name)
	}

	log.Info("order_processed", "Demo order processed", requestID, map[string]interface{}{
		"order_number": next.Number,
		"total_amount": next.CalculateTotalPrice(),
		"items":        names,
		"location":     menuCatalog.Location(),
	})
	return nil
}
