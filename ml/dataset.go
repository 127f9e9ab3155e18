package ml

import (
	"errors"
	"fmt"
	"math/rand"
)

const maxInformative = 16

type DatasetConfig struct {
	Samples          int
	Features         int
	Informative      int
	Classes          int
	ClustersPerClass int
	ClassSep         float64
	FlipY            float64
}

func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Samples:          1000,
		Features:         2,
		Informative:      2,
		Classes:          2,
		ClustersPerClass: 2,
		ClassSep:         1.0,
		FlipY:            0.01,
	}
}

type Dataset struct {
	Features [][]float64
	Labels   []int
}

func (c DatasetConfig) Validate() error {
	if c.Samples <= 0 {
		return errors.New("samples must be positive")
	}
	if c.Features <= 0 {
		return errors.New("features must be positive")
	}
	if c.Informative <= 0 || c.Informative > c.Features {
		return fmt.Errorf("informative features must be in [1, %d]", c.Features)
	}
	if c.Informative > maxInformative {
		return fmt.Errorf("informative features must not exceed %d", maxInformative)
	}
	if c.Classes < 2 {
		return errors.New("classes must be at least 2")
	}
	if c.ClustersPerClass <= 0 {
		return errors.New("clusters per class must be positive")
	}
	if c.Classes*c.ClustersPerClass > 1<<c.Informative {
		return fmt.Errorf("classes*clusters_per_class must not exceed 2^informative (%d)", 1<<c.Informative)
	}
	if c.FlipY < 0 || c.FlipY > 1 {
		return errors.New("flip_y must be in [0, 1]")
	}
	return nil
}

// GenerateDataset builds a labelled dataset with Gaussian clusters placed on
// the vertices of a hypercube with sides of length 2*ClassSep. Each cluster is
// linearly mixed by its own random matrix; a FlipY share of labels is then
// reassigned at random and the rows are shuffled.
func GenerateDataset(cfg DatasetConfig, rnd *rand.Rand) (Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return Dataset{}, err
	}
	if rnd == nil {
		return Dataset{}, errors.New("random source is required")
	}

	nClusters := cfg.Classes * cfg.ClustersPerClass
	perCluster := make([]int, nClusters)
	for k := range perCluster {
		perCluster[k] = cfg.Samples / nClusters
	}
	for k := 0; k < cfg.Samples%nClusters; k++ {
		perCluster[k]++
	}

	vertices := rnd.Perm(1 << cfg.Informative)[:nClusters]
	centroids := make([][]float64, nClusters)
	for k, vertex := range vertices {
		centroid := make([]float64, cfg.Informative)
		for j := range centroid {
			bit := float64((vertex >> j) & 1)
			centroid[j] = bit*2*cfg.ClassSep - cfg.ClassSep
		}
		centroids[k] = centroid
	}

	features := make([][]float64, 0, cfg.Samples)
	labels := make([]int, 0, cfg.Samples)
	for k := 0; k < nClusters; k++ {
		mixing := randomMatrix(cfg.Informative, rnd)
		for n := 0; n < perCluster[k]; n++ {
			point := make([]float64, cfg.Informative)
			for j := range point {
				point[j] = rnd.NormFloat64()
			}
			row := make([]float64, cfg.Features)
			for j := 0; j < cfg.Informative; j++ {
				var sum float64
				for i := 0; i < cfg.Informative; i++ {
					sum += point[i] * mixing[i][j]
				}
				row[j] = sum + centroids[k][j]
			}
			for j := cfg.Informative; j < cfg.Features; j++ {
				row[j] = rnd.NormFloat64()
			}
			features = append(features, row)
			labels = append(labels, k%cfg.Classes)
		}
	}

	if cfg.FlipY > 0 {
		for i := range labels {
			if rnd.Float64() < cfg.FlipY {
				labels[i] = rnd.Intn(cfg.Classes)
			}
		}
	}

	rnd.Shuffle(len(features), func(i, j int) {
		features[i], features[j] = features[j], features[i]
		labels[i], labels[j] = labels[j], labels[i]
	})

	return Dataset{Features: features, Labels: labels}, nil
}

func randomMatrix(n int, rnd *rand.Rand) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = 2*rnd.Float64() - 1
		}
	}
	return m
}
