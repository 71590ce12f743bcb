package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is an L2-regularized logistic regression fit by
// full-batch gradient descent. The solver parameter is accepted for
// search-space compatibility; both names run the same optimizer.
type LogisticRegression struct {
	Penalty     string
	Solver      string
	C           float64
	MaxIter     int
	ClassWeight string // "balanced" or ""
	Seed        int64
	NJobs       int

	Coef      []float64
	Intercept float64
	Fitted    bool
}

// NewLogisticRegression returns a model with sklearn-style defaults.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{Penalty: "l2", Solver: "lbfgs", C: 1.0, MaxIter: 100, NJobs: 1}
}

func (l *LogisticRegression) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "penalty":
			s, ok := stringParam(v)
			if !ok || s != "l2" {
				return badParam(name, v)
			}
			l.Penalty = s
		case "solver":
			s, ok := stringParam(v)
			if !ok || (s != "liblinear" && s != "lbfgs") {
				return badParam(name, v)
			}
			l.Solver = s
		case "C":
			f, ok := floatParam(v)
			if !ok || f <= 0 {
				return badParam(name, v)
			}
			l.C = f
		case "max_iter":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			l.MaxIter = n
		case "class_weight":
			switch cw := v.(type) {
			case nil:
				l.ClassWeight = ""
			case string:
				if cw != "balanced" {
					return badParam(name, v)
				}
				l.ClassWeight = cw
			default:
				return badParam(name, v)
			}
		case "random_state":
			s, ok := int64Param(v)
			if !ok {
				return badParam(name, v)
			}
			l.Seed = s
		case "n_jobs":
			n, ok := intParam(v)
			if !ok {
				return badParam(name, v)
			}
			l.NJobs = n
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (l *LogisticRegression) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("logisticregression: empty training set")
	}
	d := len(rows[0])

	weights := sampleWeights(y, l.ClassWeight)

	coef := make([]float64, d)
	intercept := 0.0
	grad := make([]float64, d)

	// Minimize mean weighted logloss + ||w||^2 / (2 C n).
	step := 0.5
	for iter := 0; iter < l.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0

		for i, row := range rows {
			z := intercept
			for j, v := range row {
				z += coef[j] * v
			}
			err := sigmoid(z) - float64(y[i])
			err *= weights[i]
			for j, v := range row {
				grad[j] += err * v
			}
			gradB += err
		}

		reg := 1 / (l.C * float64(n))
		for j := range coef {
			coef[j] -= step * (grad[j]/float64(n) + reg*coef[j])
		}
		intercept -= step * gradB / float64(n)
	}

	l.Coef = coef
	l.Intercept = intercept
	l.Fitted = true
	return nil
}

func (l *LogisticRegression) Predict(x *mat.Dense) ([]int, error) {
	if !l.Fitted {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		z := l.Intercept
		for j, v := range row {
			z += l.Coef[j] * v
		}
		if z > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func (l *LogisticRegression) Clone() Classifier {
	out := *l
	out.Coef = copyFloats(l.Coef)
	return &out
}

// MarshalJSONModel serializes the coefficient vector and intercept.
func (l *LogisticRegression) MarshalJSONModel() ([]byte, error) {
	return marshalJSONModel("logisticregression", l)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// sampleWeights maps class_weight to per-sample weights. "balanced"
// gives each class total weight n/2.
func sampleWeights(y []int, classWeight string) []float64 {
	w := make([]float64, len(y))
	if classWeight != "balanced" {
		for i := range w {
			w[i] = 1
		}
		return w
	}

	var counts [2]float64
	for _, label := range y {
		counts[label]++
	}
	n := float64(len(y))
	for i, label := range y {
		w[i] = n / (2 * counts[label])
	}
	return w
}
