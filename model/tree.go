package model

import (
	"math"
	"math/rand"
	"sort"
)

// Tree is a CART regression tree fit by weighted variance reduction.
// On 0/1 targets variance reduction orders splits identically to Gini
// impurity, so the same tree backs both the forest (class probability
// leaves) and gradient boosting (residual leaves). Fields are exported
// so ensembles serialize through encoding/gob.
type Tree struct {
	Root *TreeNode
}

// TreeNode is one split or leaf. Leaves have nil children and carry the
// weighted mean target of their samples.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
}

// treeConfig controls tree growth. Zero values mean no limit except
// minSamplesLeaf and minSamplesSplit, which default to 1 and 2.
type treeConfig struct {
	maxDepth        int
	minSamplesLeaf  int
	minSamplesSplit int
	maxFeatures     int
	rng             *rand.Rand
}

func (c treeConfig) normalized() treeConfig {
	if c.minSamplesLeaf < 1 {
		c.minSamplesLeaf = 1
	}
	if c.minSamplesSplit < 2 {
		c.minSamplesSplit = 2
	}
	return c
}

// growTree fits a tree on the given sample indices. target is the
// regression target per sample (0/1 labels for classification trees),
// weight the per-sample weight.
func growTree(rows [][]float64, target, weight []float64, indices []int, cfg treeConfig) *Tree {
	cfg = cfg.normalized()
	return &Tree{Root: growNode(rows, target, weight, indices, 0, cfg)}
}

func growNode(rows [][]float64, target, weight []float64, indices []int, depth int, cfg treeConfig) *TreeNode {
	node := &TreeNode{Feature: -1, Value: weightedMean(target, weight, indices)}

	if len(indices) < cfg.minSamplesSplit {
		return node
	}
	if cfg.maxDepth > 0 && depth >= cfg.maxDepth {
		return node
	}

	feature, threshold, ok := bestSplit(rows, target, weight, indices, cfg)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range indices {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = growNode(rows, target, weight, left, depth+1, cfg)
	node.Right = growNode(rows, target, weight, right, depth+1, cfg)
	return node
}

// bestSplit scans candidate features for the threshold with the largest
// weighted variance reduction. Returns ok=false when no split improves
// on the parent or respects minSamplesLeaf.
func bestSplit(rows [][]float64, target, weight []float64, indices []int, cfg treeConfig) (int, float64, bool) {
	nFeatures := len(rows[indices[0]])
	candidates := featureCandidates(nFeatures, cfg)

	var totalW, totalWT, totalWTT float64
	for _, i := range indices {
		w := weight[i]
		totalW += w
		totalWT += w * target[i]
		totalWTT += w * target[i] * target[i]
	}
	if totalW == 0 {
		return 0, 0, false
	}
	parentImpurity := totalWTT - totalWT*totalWT/totalW

	bestGain := 1e-12
	bestFeature := -1
	var bestThreshold float64

	order := make([]int, len(indices))
	for _, f := range candidates {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return rows[order[a]][f] < rows[order[b]][f]
		})

		var leftW, leftWT, leftWTT float64
		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			w := weight[i]
			leftW += w
			leftWT += w * target[i]
			leftWTT += w * target[i] * target[i]

			cur, next := rows[i][f], rows[order[pos+1]][f]
			if cur == next {
				continue
			}
			if pos+1 < cfg.minSamplesLeaf || len(order)-pos-1 < cfg.minSamplesLeaf {
				continue
			}

			rightW := totalW - leftW
			rightWT := totalWT - leftWT
			rightWTT := totalWTT - leftWTT
			if leftW == 0 || rightW == 0 {
				continue
			}

			childImpurity := (leftWTT - leftWT*leftWT/leftW) + (rightWTT - rightWT*rightWT/rightW)
			gain := parentImpurity - childImpurity
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// featureCandidates returns the features considered at a split: all of
// them, or a random subset of maxFeatures when configured.
func featureCandidates(nFeatures int, cfg treeConfig) []int {
	if cfg.maxFeatures <= 0 || cfg.maxFeatures >= nFeatures || cfg.rng == nil {
		all := make([]int, nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := cfg.rng.Perm(nFeatures)
	return perm[:cfg.maxFeatures]
}

func weightedMean(target, weight []float64, indices []int) float64 {
	var sumW, sumWT float64
	for _, i := range indices {
		sumW += weight[i]
		sumWT += weight[i] * target[i]
	}
	if sumW == 0 {
		return 0
	}
	return sumWT / sumW
}

// PredictRow walks the tree for one feature row.
func (t *Tree) PredictRow(row []float64) float64 {
	node := t.Root
	for node.Left != nil {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

func (t *Tree) clone() *Tree {
	return &Tree{Root: cloneNode(t.Root)}
}

func cloneNode(n *TreeNode) *TreeNode {
	if n == nil {
		return nil
	}
	return &TreeNode{
		Feature:   n.Feature,
		Threshold: n.Threshold,
		Left:      cloneNode(n.Left),
		Right:     cloneNode(n.Right),
		Value:     n.Value,
	}
}

// sqrtFeatures maps the "sqrt" max_features setting to a count.
func sqrtFeatures(nFeatures int) int {
	n := int(math.Sqrt(float64(nFeatures)))
	if n < 1 {
		n = 1
	}
	return n
}
