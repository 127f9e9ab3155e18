package inference

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseFeatures(t *testing.T) {
	m, err := ParseFeatures(json.RawMessage(`[[1, 2.5], [-3, 4e2]]`), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := FeatureMatrix{{1, 2.5}, {-3, 400}}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("expected %v, got %v", want, m)
	}
}

func TestParseFeaturesErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"missing", ``, ErrMissingFeatures},
		{"null", `null`, ErrMissingFeatures},
		{"scalar", `5`, ErrNotMatrix},
		{"empty", `[]`, ErrNotMatrix},
		{"one dimensional", `[1, 2]`, ErrNotMatrix},
		{"three dimensional", `[[[1, 2]], [[3, 4]]]`, ErrNotMatrix},
		{"ragged", `[[1, 2], [3]]`, ErrNotMatrix},
		{"null row", `[[1, 2], null]`, ErrNotMatrix},
		{"too many columns", `[[1, 2, 3]]`, ErrFeatureCount},
		{"empty row", `[[]]`, ErrFeatureCount},
		{"string value", `[[1, "a"]]`, ErrNonNumeric},
		{"null value", `[[1, null]]`, ErrNonNumeric},
		{"bool value", `[[true, 1]]`, ErrNonNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeatures(json.RawMessage(tt.raw), 2)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}
