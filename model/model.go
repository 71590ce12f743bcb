// Package model implements the generic classifier families driven by
// the grid search: SVC, LDA, QDA, logistic regression, random forest,
// gradient boosting, AdaBoost, and k-nearest-neighbors. All operate on
// gonum dense matrices with binary 0/1 labels.
package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors shared by all families.
var (
	// ErrNotFitted indicates Predict was called before Fit.
	ErrNotFitted = errors.New("model: not fitted")

	// ErrInvalidParam indicates an unknown parameter name or a value of
	// the wrong type passed to SetParams.
	ErrInvalidParam = errors.New("model: invalid parameter")
)

// Classifier is a trainable binary classifier. Implementations accept
// hyperparameters through SetParams under the same names the search
// spaces use, train with Fit, and return 0/1 class predictions.
type Classifier interface {
	// SetParams applies a parameter assignment. Unknown names and
	// wrong-typed values are rejected with ErrInvalidParam.
	SetParams(params map[string]any) error

	// Fit trains on the feature matrix and 0/1 labels.
	Fit(x *mat.Dense, y []int) error

	// Predict returns one 0/1 label per row of x.
	Predict(x *mat.Dense) ([]int, error)

	// Clone returns a deep copy, including fitted state.
	Clone() Classifier
}

// JSONMarshaler is implemented by families with a stable JSON model
// form. Families without one go through the gob fallback on save.
type JSONMarshaler interface {
	MarshalJSONModel() ([]byte, error)
}

// marshalJSONModel wraps a model in an envelope naming its family.
func marshalJSONModel(family string, m any) ([]byte, error) {
	return json.Marshal(struct {
		Family string `json:"family"`
		Model  any    `json:"model"`
	}{Family: family, Model: m})
}

// Parameter coercion helpers. YAML and hand-written grids mix Go
// numeric types freely, so each accessor accepts every reasonable
// representation of its target type.

func floatParam(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func intParam(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == float64(int(x)) {
			return int(x), true
		}
	}
	return 0, false
}

func int64Param(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	}
	return 0, false
}

func stringParam(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func boolParam(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func badParam(name string, v any) error {
	return fmt.Errorf("%w: %s=%v (%T)", ErrInvalidParam, name, v, v)
}

func unknownParam(name string) error {
	return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParam, name)
}

// matrixRows copies a dense matrix into per-row slices.
func matrixRows(x *mat.Dense) [][]float64 {
	r, c := x.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		mat.Row(rows[i], i, x)
	}
	return rows
}

func copyFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func copyInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func copyRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = copyFloats(r)
	}
	return out
}
