package ml

import "errors"

var (
	ErrNotTrained      = errors.New("model not trained")
	ErrFeatureMismatch = errors.New("feature count mismatch")
)

// Classifier scores rows of features with per-class probabilities.
type Classifier interface {
	PredictProba(rows [][]float64) ([][]float64, error)
	NFeatures() int
	NClasses() int
}
