package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type ForestConfig struct {
	Trees       int
	MaxDepth    int
	MaxFeatures int
	Workers     int
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100}
}

type RandomForest struct {
	trees     []*DecisionTree
	nFeatures int
	nClasses  int
}

// TrainRandomForest fits cfg.Trees trees on bootstrap samples in parallel.
// Every tree gets its own source seeded from rnd, so a seeded rnd yields the
// same forest regardless of scheduling.
func TrainRandomForest(ctx context.Context, cfg ForestConfig, features [][]float64, labels []int, rnd *rand.Rand) (*RandomForest, error) {
	nFeatures, nClasses, err := checkTrainingSet(features, labels)
	if err != nil {
		return nil, err
	}
	if cfg.Trees <= 0 {
		return nil, errors.New("trees must be positive")
	}
	if rnd == nil {
		return nil, errors.New("random source is required")
	}
	maxFeatures := cfg.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(nFeatures)))
	}
	maxFeatures = max(1, min(maxFeatures, nFeatures))
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	seeds := make([]int64, cfg.Trees)
	for i := range seeds {
		seeds[i] = rnd.Int63()
	}

	trees := make([]*DecisionTree, cfg.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			treeRnd := rand.New(rand.NewSource(seeds[i]))
			sample := make([]int, len(features))
			for j := range sample {
				sample[j] = treeRnd.Intn(len(features))
			}
			tree := NewDecisionTree(cfg.MaxDepth, maxFeatures, treeRnd)
			tree.fit(features, labels, sample, nFeatures, nClasses)
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("train forest: %w", err)
	}

	return &RandomForest{
		trees:     trees,
		nFeatures: nFeatures,
		nClasses:  nClasses,
	}, nil
}

// PredictProba averages the per-tree class distributions for each row.
func (rf *RandomForest) PredictProba(rows [][]float64) ([][]float64, error) {
	if rf == nil || len(rf.trees) == 0 {
		return nil, ErrNotTrained
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != rf.nFeatures {
			return nil, fmt.Errorf("row %d: %w: got %d, want %d", i, ErrFeatureMismatch, len(row), rf.nFeatures)
		}
		sum := make([]float64, rf.nClasses)
		for _, tree := range rf.trees {
			dist, err := tree.PredictRow(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			for c, p := range dist {
				sum[c] += p
			}
		}
		for c := range sum {
			sum[c] /= float64(len(rf.trees))
		}
		out[i] = sum
	}
	return out, nil
}

func (rf *RandomForest) NFeatures() int { return rf.nFeatures }

func (rf *RandomForest) NClasses() int { return rf.nClasses }

func (rf *RandomForest) Size() int { return len(rf.trees) }
