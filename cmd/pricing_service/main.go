package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tierprice/config"
	qhttp "tierprice/http"
	"tierprice/logging"
	"tierprice/monitoring"
	"tierprice/pricing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, level, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("pricing_service")

	// 3. Connect to the prediction service
	client := pricing.NewHTTPClient(cfg.Pricing.PredictURL, cfg.Pricing.Timeout)
	service, err := pricing.NewService(client)
	if err != nil {
		logger.Fatal("failed to create pricing service", zap.Error(err))
	}
	logger.Info("forwarding to prediction service",
		zap.String("predict_url", cfg.Pricing.PredictURL),
		zap.Duration("timeout", cfg.Pricing.Timeout),
	)

	// 4. Start HTTP server
	metrics := monitoring.NewMetricsCollector()
	server := qhttp.NewServer(qhttp.ServerConfigFrom(cfg.HTTP, cfg.Pricing.Host, cfg.Pricing.Port), logger, metrics, func(mux *http.ServeMux) {
		qhttp.RegisterPricingHandlers(mux, service, metrics)
		qhttp.RegisterDocs(mux, qhttp.PricingDocs)
		qhttp.RegisterMetricsHandler(mux, metrics)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		err := config.Watch(ctx, *configPath, logger, func(updated *config.Config) {
			logging.ApplyLevel(level, updated.Log, logger)
		})
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("pricing service stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("exiting")
}
