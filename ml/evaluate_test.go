package ml

import (
	"context"
	"math/rand"
	"testing"
)

func TestSplitDataset(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	data, err := GenerateDataset(DefaultDatasetConfig(), rnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	train, test := SplitDataset(data, 0.25, rnd)
	if len(train.Features) != 750 || len(test.Features) != 250 {
		t.Fatalf("unexpected split: %d/%d", len(train.Features), len(test.Features))
	}
	if len(train.Labels) != len(train.Features) || len(test.Labels) != len(test.Features) {
		t.Fatal("labels not aligned with features")
	}
}

func TestEvaluateSeparable(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	cfg := DefaultDatasetConfig()
	cfg.ClassSep = 5
	cfg.FlipY = 0
	data, err := GenerateDataset(cfg, rnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	train, test := SplitDataset(data, 0.2, rnd)
	model, err := TrainModel(context.Background(), TrainConfig{Forest: ForestConfig{Trees: 10}}, train, rnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	metrics, err := Evaluate(model, test, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.Accuracy < 0.8 {
		t.Fatalf("expected accuracy >= 0.8 on well separated clusters, got %f", metrics.Accuracy)
	}
}
