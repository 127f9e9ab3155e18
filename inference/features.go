package inference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FeatureMatrix holds one row per sample and one column per feature.
type FeatureMatrix [][]float64

var (
	ErrMissingFeatures = errors.New("invalid input")
	ErrNotMatrix       = errors.New("input features should be a 2D array")
	ErrNonNumeric      = errors.New("input features should be numeric")
	ErrFeatureCount    = errors.New("incorrect number of features")
)

// ValidationError reports a request whose features cannot be scored.
// Err is one of the Err* sentinels above.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// ParseFeatures decodes the raw "features" value of a request into a matrix
// with exactly nFeatures columns. Shape problems are reported before feature
// count, and feature count before non-numeric cells.
func ParseFeatures(raw json.RawMessage, nFeatures int) (FeatureMatrix, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &ValidationError{Err: ErrMissingFeatures}
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, invalid(ErrNotMatrix, "features is not an array")
	}
	if len(rows) == 0 {
		return nil, invalid(ErrNotMatrix, "features is empty")
	}

	cells := make([][]json.RawMessage, len(rows))
	for i, row := range rows {
		if err := json.Unmarshal(row, &cells[i]); err != nil || cells[i] == nil {
			return nil, invalid(ErrNotMatrix, "row %d is not an array", i)
		}
		if len(cells[i]) != len(cells[0]) {
			return nil, invalid(ErrNotMatrix, "row %d has %d values, row 0 has %d", i, len(cells[i]), len(cells[0]))
		}
		for j, cell := range cells[i] {
			if trimmed := bytes.TrimSpace(cell); len(trimmed) > 0 && trimmed[0] == '[' {
				return nil, invalid(ErrNotMatrix, "value at [%d][%d] is nested", i, j)
			}
		}
	}

	if len(cells[0]) != nFeatures {
		return nil, invalid(ErrFeatureCount, "got %d, want %d", len(cells[0]), nFeatures)
	}

	matrix := make(FeatureMatrix, len(cells))
	for i, row := range cells {
		values := make([]float64, len(row))
		for j, cell := range row {
			if bytes.Equal(bytes.TrimSpace(cell), []byte("null")) {
				return nil, invalid(ErrNonNumeric, "value at [%d][%d] is null", i, j)
			}
			if err := json.Unmarshal(cell, &values[j]); err != nil {
				return nil, invalid(ErrNonNumeric, "value at [%d][%d] is %s", i, j, cell)
			}
		}
		matrix[i] = values
	}
	return matrix, nil
}
