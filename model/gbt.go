package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// GradientBoosting is a gradient-boosted ensemble of shallow regression
// trees fit on logloss pseudo-residuals.
type GradientBoosting struct {
	NEstimators     int
	LearningRate    float64
	Subsample       float64
	MinSamplesSplit int
	MaxDepth        int
	Seed            int64

	Init  float64 // initial log-odds
	Trees []*Tree
}

// NewGradientBoosting returns a model with sklearn-style defaults.
func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{NEstimators: 100, LearningRate: 0.1, Subsample: 1.0, MinSamplesSplit: 2, MaxDepth: 3}
}

func (g *GradientBoosting) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "n_estimators":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			g.NEstimators = n
		case "learning_rate":
			f, ok := floatParam(v)
			if !ok || f <= 0 {
				return badParam(name, v)
			}
			g.LearningRate = f
		case "subsample":
			f, ok := floatParam(v)
			if !ok || f <= 0 || f > 1 {
				return badParam(name, v)
			}
			g.Subsample = f
		case "min_samples_split":
			n, ok := intParam(v)
			if !ok || n < 2 {
				return badParam(name, v)
			}
			g.MinSamplesSplit = n
		case "max_depth":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			g.MaxDepth = n
		case "random_state":
			s, ok := int64Param(v)
			if !ok {
				return badParam(name, v)
			}
			g.Seed = s
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (g *GradientBoosting) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("gradientboosting: empty training set")
	}

	var pos float64
	for _, label := range y {
		pos += float64(label)
	}
	if pos == 0 || pos == float64(n) {
		return fmt.Errorf("gradientboosting: training set must contain both classes")
	}
	g.Init = math.Log(pos / (float64(n) - pos))

	rng := rand.New(rand.NewSource(g.Seed))
	margin := make([]float64, n)
	for i := range margin {
		margin[i] = g.Init
	}
	residual := make([]float64, n)
	weight := make([]float64, n)
	for i := range weight {
		weight[i] = 1
	}

	g.Trees = make([]*Tree, 0, g.NEstimators)
	subsetSize := int(g.Subsample * float64(n))
	if subsetSize < 1 {
		subsetSize = 1
	}

	for t := 0; t < g.NEstimators; t++ {
		for i := range residual {
			residual[i] = float64(y[i]) - sigmoid(margin[i])
		}

		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		if subsetSize < n {
			rng.Shuffle(n, func(a, b int) {
				indices[a], indices[b] = indices[b], indices[a]
			})
			indices = indices[:subsetSize]
		}

		tree := growTree(rows, residual, weight, indices, treeConfig{
			maxDepth:        g.MaxDepth,
			minSamplesSplit: g.MinSamplesSplit,
			rng:             rng,
		})
		g.Trees = append(g.Trees, tree)

		for i, row := range rows {
			margin[i] += g.LearningRate * tree.PredictRow(row)
		}
	}
	return nil
}

func (g *GradientBoosting) Predict(x *mat.Dense) ([]int, error) {
	if g.Trees == nil {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		z := g.Init
		for _, t := range g.Trees {
			z += g.LearningRate * t.PredictRow(row)
		}
		if sigmoid(z) > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

func (g *GradientBoosting) Clone() Classifier {
	out := *g
	if g.Trees != nil {
		out.Trees = make([]*Tree, len(g.Trees))
		for i, t := range g.Trees {
			out.Trees[i] = t.clone()
		}
	}
	return &out
}
