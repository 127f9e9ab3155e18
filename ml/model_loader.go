package ml

import (
	"context"
	"fmt"
	"math/rand"
)

const (
	ModelRandomForest = "random_forest"
	ModelDecisionTree = "decision_tree"
)

type TrainConfig struct {
	ModelType string
	Forest    ForestConfig
}

// TrainModel fits the classifier named by cfg.ModelType on data.
func TrainModel(ctx context.Context, cfg TrainConfig, data Dataset, rnd *rand.Rand) (Classifier, error) {
	switch cfg.ModelType {
	case "", ModelRandomForest:
		return TrainRandomForest(ctx, cfg.Forest, data.Features, data.Labels, rnd)
	case ModelDecisionTree:
		model := NewDecisionTree(cfg.Forest.MaxDepth, cfg.Forest.MaxFeatures, rnd)
		if err := model.Train(data.Features, data.Labels); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", cfg.ModelType)
	}
}
