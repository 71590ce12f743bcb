package model

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// KNN is a brute-force k-nearest-neighbors classifier.
type KNN struct {
	NNeighbors int
	Weights    string // "uniform" or "distance"
	Algorithm  string // "auto" or "brute"; both search exhaustively
	NJobs      int

	TrainX [][]float64
	TrainY []int
}

// NewKNN returns a KNN with the usual defaults.
func NewKNN() *KNN {
	return &KNN{NNeighbors: 5, Weights: "uniform", Algorithm: "auto", NJobs: 1}
}

func (k *KNN) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "n_neighbors":
			n, ok := intParam(v)
			if !ok || n < 1 {
				return badParam(name, v)
			}
			k.NNeighbors = n
		case "weights":
			s, ok := stringParam(v)
			if !ok || (s != "uniform" && s != "distance") {
				return badParam(name, v)
			}
			k.Weights = s
		case "algorithm":
			s, ok := stringParam(v)
			if !ok || (s != "auto" && s != "brute") {
				return badParam(name, v)
			}
			k.Algorithm = s
		case "n_jobs":
			n, ok := intParam(v)
			if !ok {
				return badParam(name, v)
			}
			k.NJobs = n
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (k *KNN) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	if len(rows) < k.NNeighbors {
		return fmt.Errorf("knn: %d training samples for n_neighbors=%d", len(rows), k.NNeighbors)
	}
	k.TrainX = rows
	k.TrainY = copyInts(y)
	return nil
}

func (k *KNN) Predict(x *mat.Dense) ([]int, error) {
	if k.TrainX == nil {
		return nil, ErrNotFitted
	}

	rows := matrixRows(x)
	out := make([]int, len(rows))

	jobs := k.NJobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range rows {
		g.Go(func() error {
			out[i] = k.predictRow(rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (k *KNN) predictRow(row []float64) int {
	type neighbor struct {
		dist  float64
		index int
	}
	neighbors := make([]neighbor, len(k.TrainX))
	for i, tr := range k.TrainX {
		var d float64
		for j := range row {
			diff := row[j] - tr[j]
			d += diff * diff
		}
		neighbors[i] = neighbor{dist: math.Sqrt(d), index: i}
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].dist != neighbors[b].dist {
			return neighbors[a].dist < neighbors[b].dist
		}
		return neighbors[a].index < neighbors[b].index
	})

	var votes [2]float64
	for _, n := range neighbors[:k.NNeighbors] {
		w := 1.0
		if k.Weights == "distance" {
			if n.dist == 0 {
				// An exact duplicate dominates every other neighbor.
				w = 1e12
			} else {
				w = 1 / n.dist
			}
		}
		votes[k.TrainY[n.index]] += w
	}
	if votes[1] > votes[0] {
		return 1
	}
	return 0
}

func (k *KNN) Clone() Classifier {
	out := *k
	out.TrainX = copyRows(k.TrainX)
	out.TrainY = copyInts(k.TrainY)
	return &out
}

// MarshalJSONModel serializes the full instance store.
func (k *KNN) MarshalJSONModel() ([]byte, error) {
	return marshalJSONModel("knn", k)
}
