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
	"tierprice/inference"
	"tierprice/logging"
	"tierprice/ml"
	"tierprice/monitoring"
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
	logger = logger.Named("predict_service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Train the model before accepting requests
	service, err := inference.NewService(ctx, inferenceConfig(cfg.Predict.Model), logger)
	if err != nil {
		logger.Fatal("failed to train model", zap.Error(err))
	}

	// 4. Start HTTP server
	metrics := monitoring.NewMetricsCollector()
	server := qhttp.NewServer(qhttp.ServerConfigFrom(cfg.HTTP, cfg.Predict.Host, cfg.Predict.Port), logger, metrics, func(mux *http.ServeMux) {
		qhttp.RegisterPredictHandlers(mux, service)
		qhttp.RegisterDocs(mux, qhttp.PredictDocs)
		qhttp.RegisterMetricsHandler(mux, metrics)
	})

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
		logger.Error("predict service stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("exiting")
}

// inferenceConfig maps the model section onto the training parameters.
func inferenceConfig(m config.ModelConfig) inference.Config {
	cfg := inference.DefaultConfig()
	cfg.ModelType = m.Type
	cfg.Dataset.Samples = m.Samples
	cfg.Dataset.Features = m.Features
	cfg.Dataset.Informative = m.Informative
	cfg.Dataset.Classes = m.Classes
	cfg.Dataset.ClustersPerClass = m.ClustersPerClass
	if m.FlipY != nil {
		cfg.Dataset.FlipY = *m.FlipY
	}
	cfg.Forest = ml.ForestConfig{Trees: m.Trees, MaxDepth: m.MaxDepth}
	cfg.Seed = m.Seed
	return cfg
}
