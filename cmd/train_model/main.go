package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"tierprice/config"
	"tierprice/inference"
	"tierprice/logging"
	"tierprice/ml"
)

func main() {
	modelType := flag.String("model", ml.ModelRandomForest, "model type (random_forest or decision_tree)")
	samples := flag.Int("samples", config.DefaultSamples, "number of synthetic samples")
	features := flag.Int("features", config.DefaultFeatures, "number of features")
	trees := flag.Int("trees", config.DefaultTrees, "number of trees in the forest")
	maxDepth := flag.Int("max_depth", 0, "max tree depth (0 grows until leaves are pure)")
	seed := flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	testRatio := flag.Float64("test_ratio", 0.2, "test ratio")
	flag.Parse()

	logger, _, err := logging.New(config.LogConfig{Level: config.DefaultLogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(*seed))

	dataCfg := ml.DefaultDatasetConfig()
	dataCfg.Samples = *samples
	dataCfg.Features = *features
	dataCfg.Informative = min(dataCfg.Informative, *features)
	data, err := ml.GenerateDataset(dataCfg, rnd)
	if err != nil {
		logger.Fatal("failed to build training data", zap.Error(err))
	}

	train, test := ml.SplitDataset(data, *testRatio, rnd)

	start := time.Now()
	model, err := ml.TrainModel(context.Background(), ml.TrainConfig{
		ModelType: *modelType,
		Forest:    ml.ForestConfig{Trees: *trees, MaxDepth: *maxDepth},
	}, train, rnd)
	if err != nil {
		logger.Fatal("failed to train model", zap.Error(err))
	}

	metrics, err := ml.Evaluate(model, test, inference.PositiveClass)
	if err != nil {
		logger.Fatal("failed to evaluate model", zap.Error(err))
	}
	logger.Info("model evaluated",
		zap.String("model_type", *modelType),
		zap.Int64("seed", *seed),
		zap.Int("train_samples", len(train.Features)),
		zap.Int("test_samples", len(test.Features)),
		zap.Float64("accuracy", metrics.Accuracy),
		zap.Float64("precision", metrics.Precision),
		zap.Float64("recall", metrics.Recall),
		zap.Duration("took", time.Since(start)),
	)
}
