package model

import (
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// RandomForest is a bagged ensemble of CART trees voting by averaged
// class probability.
type RandomForest struct {
	NEstimators    int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    string // "sqrt" or "" for all
	ClassWeight    string // "balanced" or ""
	Bootstrap      bool
	Seed           int64
	NJobs          int

	Trees []*Tree
}

// NewRandomForest returns a forest with sklearn-style defaults.
func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 100, MinSamplesLeaf: 1, MaxFeatures: "sqrt", Bootstrap: true, NJobs: 1}
}

func (r *RandomForest) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "n_estimators":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			r.NEstimators = n
		case "max_depth":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			r.MaxDepth = n
		case "min_samples_leaf":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			r.MinSamplesLeaf = n
		case "max_features":
			s, ok := stringParam(v)
			if !ok || s != "sqrt" {
				return badParam(name, v)
			}
			r.MaxFeatures = s
		case "class_weight":
			switch cw := v.(type) {
			case nil:
				r.ClassWeight = ""
			case string:
				if cw != "balanced" {
					return badParam(name, v)
				}
				r.ClassWeight = cw
			default:
				return badParam(name, v)
			}
		case "bootstrap":
			b, ok := boolParam(v)
			if !ok {
				return badParam(name, v)
			}
			r.Bootstrap = b
		case "random_state":
			s, ok := int64Param(v)
			if !ok {
				return badParam(name, v)
			}
			r.Seed = s
		case "n_jobs":
			n, ok := intParam(v)
			if !ok {
				return badParam(name, v)
			}
			r.NJobs = n
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (r *RandomForest) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	if len(rows) == 0 {
		return fmt.Errorf("randomforest: empty training set")
	}

	target := make([]float64, len(y))
	for i, label := range y {
		target[i] = float64(label)
	}
	weight := sampleWeights(y, r.ClassWeight)

	maxFeatures := 0
	if r.MaxFeatures == "sqrt" {
		maxFeatures = sqrtFeatures(len(rows[0]))
	}

	trees := make([]*Tree, r.NEstimators)
	jobs := r.NJobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for t := 0; t < r.NEstimators; t++ {
		g.Go(func() error {
			// Each tree gets its own derived seed so the fit is
			// deterministic regardless of worker scheduling.
			rng := rand.New(rand.NewSource(r.Seed + int64(t)))

			indices := make([]int, len(rows))
			if r.Bootstrap {
				for i := range indices {
					indices[i] = rng.Intn(len(rows))
				}
			} else {
				for i := range indices {
					indices[i] = i
				}
			}

			trees[t] = growTree(rows, target, weight, indices, treeConfig{
				maxDepth:       r.MaxDepth,
				minSamplesLeaf: r.MinSamplesLeaf,
				maxFeatures:    maxFeatures,
				rng:            rng,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.Trees = trees
	return nil
}

func (r *RandomForest) Predict(x *mat.Dense) ([]int, error) {
	if r.Trees == nil {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		var prob float64
		for _, t := range r.Trees {
			prob += t.PredictRow(row)
		}
		if prob/float64(len(r.Trees)) > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

func (r *RandomForest) Clone() Classifier {
	out := *r
	if r.Trees != nil {
		out.Trees = make([]*Tree, len(r.Trees))
		for i, t := range r.Trees {
			out.Trees[i] = t.clone()
		}
	}
	return &out
}
