package inference

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"tierprice/ml"
)

// PositiveClass is the label whose probability is served.
const PositiveClass = 1

type Config struct {
	ModelType string
	Dataset   ml.DatasetConfig
	Forest    ml.ForestConfig
	// Seed drives dataset generation and training; 0 seeds from the clock.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		ModelType: ml.ModelRandomForest,
		Dataset:   ml.DefaultDatasetConfig(),
		Forest:    ml.DefaultForestConfig(),
	}
}

// Service scores feature matrices with a classifier that is trained once and
// never modified afterwards, so it is safe for concurrent use.
type Service struct {
	model ml.Classifier
}

// NewService generates the synthetic training set and trains the classifier.
func NewService(ctx context.Context, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	start := time.Now()
	data, err := ml.GenerateDataset(cfg.Dataset, rnd)
	if err != nil {
		return nil, fmt.Errorf("generate dataset: %w", err)
	}
	model, err := ml.TrainModel(ctx, ml.TrainConfig{ModelType: cfg.ModelType, Forest: cfg.Forest}, data, rnd)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}

	logger.Info("model trained",
		zap.String("model_type", cfg.ModelType),
		zap.Int("samples", len(data.Features)),
		zap.Int("features", model.NFeatures()),
		zap.Int("classes", model.NClasses()),
		zap.Int64("seed", seed),
		zap.Duration("took", time.Since(start)),
	)
	return NewServiceFromModel(model)
}

// NewServiceFromModel wraps an already trained classifier.
func NewServiceFromModel(model ml.Classifier) (*Service, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if model.NClasses() <= PositiveClass {
		return nil, fmt.Errorf("model has %d classes, need at least %d", model.NClasses(), PositiveClass+1)
	}
	return &Service{model: model}, nil
}

func (s *Service) NFeatures() int {
	return s.model.NFeatures()
}

// PredictProba returns the positive-class probability of every row, in order.
func (s *Service) PredictProba(features FeatureMatrix) ([]float64, error) {
	if len(features) == 0 {
		return nil, invalid(ErrNotMatrix, "features is empty")
	}
	for i, row := range features {
		if len(row) != s.model.NFeatures() {
			return nil, invalid(ErrFeatureCount, "row %d: got %d, want %d", i, len(row), s.model.NFeatures())
		}
	}
	proba, err := s.model.PredictProba(features)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(proba))
	for i, dist := range proba {
		out[i] = dist[PositiveClass]
	}
	return out, nil
}
