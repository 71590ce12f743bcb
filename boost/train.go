package boost

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Eval names a dataset monitored during training.
type Eval struct {
	Matrix *Matrix
	Name   string
}

// ErrUnsupportedObjective indicates an objective other than
// binary:logistic.
var ErrUnsupportedObjective = errors.New("boost: unsupported objective")

// trainParams is the validated hyperparameter set. Defaults follow the
// conventions of the libraries this package mirrors.
type trainParams struct {
	maxDepth        int
	eta             float64
	gamma           float64 // minimum split gain
	lambda          float64 // L2 leaf regularization
	subsample       float64
	colsampleByTree float64
	scalePosWeight  float64
	seed            int64
	nthread         int
}

func parseParams(params map[string]any) (trainParams, error) {
	p := trainParams{
		maxDepth:        6,
		eta:             0.3,
		lambda:          1,
		subsample:       1,
		colsampleByTree: 1,
		scalePosWeight:  1,
		nthread:         1,
	}
	for name, v := range params {
		switch name {
		case "objective":
			s, _ := v.(string)
			if s != "binary:logistic" {
				return p, fmt.Errorf("%w: %v", ErrUnsupportedObjective, v)
			}
		case "max_depth":
			n, ok := asInt(v)
			if !ok || n < 1 {
				return p, badTrainParam(name, v)
			}
			p.maxDepth = n
		case "eta":
			f, ok := asFloat(v)
			if !ok || f <= 0 || f > 1 {
				return p, badTrainParam(name, v)
			}
			p.eta = f
		case "gamma":
			f, ok := asFloat(v)
			if !ok || f < 0 {
				return p, badTrainParam(name, v)
			}
			p.gamma = f
		case "lambda":
			f, ok := asFloat(v)
			if !ok || f < 0 {
				return p, badTrainParam(name, v)
			}
			p.lambda = f
		case "subsample":
			f, ok := asFloat(v)
			if !ok || f <= 0 || f > 1 {
				return p, badTrainParam(name, v)
			}
			p.subsample = f
		case "colsample_bytree":
			f, ok := asFloat(v)
			if !ok || f <= 0 || f > 1 {
				return p, badTrainParam(name, v)
			}
			p.colsampleByTree = f
		case "scale_pos_weight":
			f, ok := asFloat(v)
			if !ok || f <= 0 {
				return p, badTrainParam(name, v)
			}
			p.scalePosWeight = f
		case "seed":
			s, ok := asInt64(v)
			if !ok {
				return p, badTrainParam(name, v)
			}
			p.seed = s
		case "nthread":
			n, ok := asInt(v)
			if !ok {
				return p, badTrainParam(name, v)
			}
			p.nthread = n
		default:
			return p, fmt.Errorf("boost: unknown parameter %q", name)
		}
	}
	return p, nil
}

// Train fits numRounds boosting rounds on dtrain, evaluating logloss on
// every eval set each round. When earlyStopping > 0 and the LAST eval
// set fails to improve for that many consecutive rounds, training stops
// and the booster's BestIteration points at the best round seen.
func Train(params map[string]any, dtrain *Matrix, numRounds, earlyStopping int, evals []Eval) (*Booster, error) {
	p, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if !dtrain.HasLabel() {
		return nil, errors.New("boost: training matrix has no labels")
	}

	n := dtrain.NumRow()
	rng := rand.New(rand.NewSource(p.seed))

	booster := &Booster{BaseScore: 0, BestScore: math.Inf(1)}

	margin := make([]float64, n)
	grad := make([]float64, n)
	hess := make([]float64, n)

	// Incremental margins for eval sets.
	evalMargins := make([][]float64, len(evals))
	for e, ev := range evals {
		if !ev.Matrix.HasLabel() {
			return nil, fmt.Errorf("boost: eval set %q has no labels", ev.Name)
		}
		evalMargins[e] = make([]float64, ev.Matrix.NumRow())
	}

	bestRound := 0
	for round := 0; round < numRounds; round++ {
		for i := 0; i < n; i++ {
			prob := 1 / (1 + math.Exp(-margin[i]))
			g := prob - dtrain.label[i]
			h := prob * (1 - prob)
			if dtrain.label[i] == 1 {
				g *= p.scalePosWeight
				h *= p.scalePosWeight
			}
			grad[i] = g
			hess[i] = h
		}

		indices := sampleRows(n, p.subsample, rng)
		features := sampleFeatures(dtrain.NumCol(), p.colsampleByTree, rng)

		tree := buildTree(dtrain, grad, hess, indices, features, p)
		booster.Trees = append(booster.Trees, tree)

		for i := 0; i < n; i++ {
			margin[i] += tree.predictRow(dtrain.row(i))
		}
		for e, ev := range evals {
			for i := range evalMargins[e] {
				evalMargins[e][i] += tree.predictRow(ev.Matrix.row(i))
			}
		}

		// Early stopping monitors the last eval set.
		if len(evals) > 0 {
			last := len(evals) - 1
			score := logloss(evals[last].Matrix.label, evalMargins[last])
			if score < booster.BestScore {
				booster.BestScore = score
				bestRound = round
			} else if earlyStopping > 0 && round-bestRound >= earlyStopping {
				booster.BestIteration = bestRound + 1
				return booster, nil
			}
		}
	}

	if len(evals) > 0 {
		booster.BestIteration = bestRound + 1
	} else {
		booster.BestIteration = len(booster.Trees)
		booster.BestScore = logloss(dtrain.label, margin)
	}
	return booster, nil
}

// buildTree grows one tree by exact greedy gain search, with leaf
// values shrunk by eta.
func buildTree(m *Matrix, grad, hess []float64, indices, features []int, p trainParams) *Tree {
	return &Tree{Root: buildNode(m, grad, hess, indices, features, 0, p)}
}

func buildNode(m *Matrix, grad, hess []float64, indices, features []int, depth int, p trainParams) *Node {
	var sumG, sumH float64
	for _, i := range indices {
		sumG += grad[i]
		sumH += hess[i]
	}
	leaf := &Node{Feature: -1, Leaf: -p.eta * sumG / (sumH + p.lambda)}

	if depth >= p.maxDepth || len(indices) < 2 {
		return leaf
	}

	feature, threshold, gain := bestGainSplit(m, grad, hess, indices, features, sumG, sumH, p)
	if gain <= 0 {
		return leaf
	}

	var left, right []int
	for _, i := range indices {
		if m.at(i, feature) < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildNode(m, grad, hess, left, features, depth+1, p),
		Right:     buildNode(m, grad, hess, right, features, depth+1, p),
	}
}

// bestGainSplit returns the split maximizing
// G_L^2/(H_L+lambda) + G_R^2/(H_R+lambda) - G^2/(H+lambda) - gamma.
// The per-feature scans run on nthread workers.
func bestGainSplit(m *Matrix, grad, hess []float64, indices, features []int, sumG, sumH float64, p trainParams) (int, float64, float64) {
	parent := sumG * sumG / (sumH + p.lambda)

	type candidate struct {
		gain      float64
		threshold float64
	}
	candidates := make([]candidate, len(features))

	nthread := p.nthread
	if nthread < 1 {
		nthread = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(nthread)
	for fi, f := range features {
		g.Go(func() error {
			order := make([]int, len(indices))
			copy(order, indices)
			sortByFeature(m, order, f)

			best := candidate{}
			var leftG, leftH float64
			for pos := 0; pos < len(order)-1; pos++ {
				i := order[pos]
				leftG += grad[i]
				leftH += hess[i]

				cur, next := m.at(i, f), m.at(order[pos+1], f)
				if cur == next {
					continue
				}

				rightG := sumG - leftG
				rightH := sumH - leftH
				gain := leftG*leftG/(leftH+p.lambda) + rightG*rightG/(rightH+p.lambda) - parent - p.gamma
				if gain > best.gain {
					best.gain = gain
					best.threshold = (cur + next) / 2
				}
			}
			candidates[fi] = best
			return nil
		})
	}
	_ = g.Wait()

	bestGain := 0.0
	bestFeature := -1
	var bestThreshold float64
	for fi, c := range candidates {
		if c.gain > bestGain {
			bestGain = c.gain
			bestFeature = features[fi]
			bestThreshold = c.threshold
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func sortByFeature(m *Matrix, order []int, f int) {
	// Insertion sort keeps this allocation-free; node index sets are
	// small once the tree is a few levels deep.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && m.at(order[j], f) < m.at(order[j-1], f); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}

func sampleRows(n int, subsample float64, rng *rand.Rand) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if subsample >= 1 {
		return indices
	}
	k := int(subsample * float64(n))
	if k < 1 {
		k = 1
	}
	rng.Shuffle(n, func(a, b int) {
		indices[a], indices[b] = indices[b], indices[a]
	})
	return indices[:k]
}

func sampleFeatures(cols int, colsample float64, rng *rand.Rand) []int {
	features := make([]int, cols)
	for i := range features {
		features[i] = i
	}
	if colsample >= 1 {
		return features
	}
	k := int(colsample * float64(cols))
	if k < 1 {
		k = 1
	}
	rng.Shuffle(cols, func(a, b int) {
		features[a], features[b] = features[b], features[a]
	})
	return features[:k]
}

func logloss(labels, margins []float64) float64 {
	const eps = 1e-15
	var sum float64
	for i, y := range labels {
		p := 1 / (1 + math.Exp(-margins[i]))
		if p < eps {
			p = eps
		} else if p > 1-eps {
			p = 1 - eps
		}
		sum += -y*math.Log(p) - (1-y)*math.Log(1-p)
	}
	return sum / float64(len(labels))
}

func asFloat(v any) (float64, bool) {
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

func asInt(v any) (int, bool) {
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

func asInt64(v any) (int64, bool) {
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

func badTrainParam(name string, v any) error {
	return fmt.Errorf("boost: invalid parameter %s=%v (%T)", name, v, v)
}
