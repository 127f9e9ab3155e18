package ml

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestGenerateDataset(t *testing.T) {
	cfg := DefaultDatasetConfig()
	data, err := GenerateDataset(cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Features) != cfg.Samples || len(data.Labels) != cfg.Samples {
		t.Fatalf("expected %d samples, got %d/%d", cfg.Samples, len(data.Features), len(data.Labels))
	}
	counts := make(map[int]int)
	for i, row := range data.Features {
		if len(row) != cfg.Features {
			t.Fatalf("row %d: expected %d features, got %d", i, cfg.Features, len(row))
		}
		counts[data.Labels[i]]++
	}
	if len(counts) != cfg.Classes {
		t.Fatalf("expected %d classes, got %v", cfg.Classes, counts)
	}
	for label := range counts {
		if label < 0 || label >= cfg.Classes {
			t.Fatalf("unexpected label %d", label)
		}
	}
}

func TestGenerateDatasetSeeded(t *testing.T) {
	cfg := DefaultDatasetConfig()
	cfg.Samples = 50
	cfg.Features = 4
	a, err := GenerateDataset(cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateDataset(cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical datasets for identical seeds")
	}
}

func TestDatasetConfigValidate(t *testing.T) {
	base := DefaultDatasetConfig()

	cfg := base
	cfg.Samples = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero samples")
	}

	cfg = base
	cfg.Informative = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for informative > features")
	}

	cfg = base
	cfg.Classes = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when clusters exceed hypercube vertices")
	}

	cfg = base
	cfg.FlipY = 2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for flip_y out of range")
	}

	if _, err := GenerateDataset(base, nil); err == nil {
		t.Fatal("expected error for nil random source")
	}
}
