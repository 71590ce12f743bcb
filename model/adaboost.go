package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// AdaBoost is discrete AdaBoost (SAMME) over depth-1 decision stumps.
type AdaBoost struct {
	NEstimators  int
	LearningRate float64
	Seed         int64

	Stumps []*Tree
	Alphas []float64
}

// NewAdaBoost returns a model with sklearn-style defaults.
func NewAdaBoost() *AdaBoost {
	return &AdaBoost{NEstimators: 50, LearningRate: 1.0}
}

func (a *AdaBoost) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "n_estimators":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			a.NEstimators = n
		case "learning_rate":
			f, ok := floatParam(v)
			if !ok || f <= 0 {
				return badParam(name, v)
			}
			a.LearningRate = f
		case "random_state":
			s, ok := int64Param(v)
			if !ok {
				return badParam(name, v)
			}
			a.Seed = s
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (a *AdaBoost) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("adaboost: empty training set")
	}

	target := make([]float64, n)
	for i, label := range y {
		target[i] = float64(label)
	}
	weight := make([]float64, n)
	for i := range weight {
		weight[i] = 1 / float64(n)
	}

	rng := rand.New(rand.NewSource(a.Seed))
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	a.Stumps = a.Stumps[:0]
	a.Alphas = a.Alphas[:0]

	for t := 0; t < a.NEstimators; t++ {
		stump := growTree(rows, target, weight, indices, treeConfig{maxDepth: 1, rng: rng})

		var werr float64
		pred := make([]int, n)
		for i, row := range rows {
			if stump.PredictRow(row) > 0.5 {
				pred[i] = 1
			}
			if pred[i] != y[i] {
				werr += weight[i]
			}
		}

		if werr <= 0 {
			// Perfect stump: it decides alone.
			a.Stumps = append(a.Stumps, stump)
			a.Alphas = append(a.Alphas, 1)
			break
		}
		if werr >= 0.5 {
			break
		}

		alpha := a.LearningRate * math.Log((1-werr)/werr)
		a.Stumps = append(a.Stumps, stump)
		a.Alphas = append(a.Alphas, alpha)

		var total float64
		for i := range weight {
			if pred[i] != y[i] {
				weight[i] *= math.Exp(alpha)
			}
			total += weight[i]
		}
		for i := range weight {
			weight[i] /= total
		}
	}

	if len(a.Stumps) == 0 {
		return fmt.Errorf("adaboost: no stump beat the weighted baseline")
	}
	return nil
}

func (a *AdaBoost) Predict(x *mat.Dense) ([]int, error) {
	if a.Stumps == nil {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		var score float64
		for s, stump := range a.Stumps {
			vote := -1.0
			if stump.PredictRow(row) > 0.5 {
				vote = 1.0
			}
			score += a.Alphas[s] * vote
		}
		if score > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func (a *AdaBoost) Clone() Classifier {
	out := *a
	if a.Stumps != nil {
		out.Stumps = make([]*Tree, len(a.Stumps))
		for i, s := range a.Stumps {
			out.Stumps[i] = s.clone()
		}
	}
	out.Alphas = copyFloats(a.Alphas)
	return &out
}
