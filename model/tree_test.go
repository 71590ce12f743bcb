package model

import "testing"

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestGrowTreeSplitsOnVarianceReduction(t *testing.T) {
	rows := [][]float64{{0}, {1}, {2}, {3}}
	target := []float64{0, 0, 1, 1}
	indices := []int{0, 1, 2, 3}

	tree := growTree(rows, target, uniformWeights(4), indices, treeConfig{maxDepth: 1})

	if tree.Root.Left == nil {
		t.Fatal("expected a split at the root")
	}
	if tree.Root.Threshold != 1.5 {
		t.Errorf("threshold = %v, want 1.5 (midpoint of the class boundary)", tree.Root.Threshold)
	}
	if got := tree.PredictRow([]float64{0.5}); got != 0 {
		t.Errorf("PredictRow(0.5) = %v, want 0", got)
	}
	if got := tree.PredictRow([]float64{2.5}); got != 1 {
		t.Errorf("PredictRow(2.5) = %v, want 1", got)
	}
}

func TestGrowTreePureNodeStaysLeaf(t *testing.T) {
	rows := [][]float64{{0}, {1}, {2}}
	target := []float64{1, 1, 1}
	indices := []int{0, 1, 2}

	tree := growTree(rows, target, uniformWeights(3), indices, treeConfig{})

	if tree.Root.Left != nil {
		t.Error("pure node should not split")
	}
	if tree.Root.Value != 1 {
		t.Errorf("leaf value = %v, want 1", tree.Root.Value)
	}
}

func TestGrowTreeHonorsMinSamplesLeaf(t *testing.T) {
	rows := [][]float64{{0}, {1}, {2}, {3}}
	target := []float64{0, 1, 1, 1}
	indices := []int{0, 1, 2, 3}

	// The highest-gain cut isolates the single zero at threshold 0.5;
	// requiring two samples per leaf forces the cut to 1.5.
	tree := growTree(rows, target, uniformWeights(4), indices, treeConfig{maxDepth: 1, minSamplesLeaf: 2})

	if tree.Root.Left == nil {
		t.Fatal("expected a split at the root")
	}
	if tree.Root.Threshold != 1.5 {
		t.Errorf("threshold = %v, want 1.5 under minSamplesLeaf=2", tree.Root.Threshold)
	}
}

func TestWeightedMeanRespectsWeights(t *testing.T) {
	target := []float64{0, 1}
	weight := []float64{3, 1}

	if got := weightedMean(target, weight, []int{0, 1}); got != 0.25 {
		t.Errorf("weightedMean = %v, want 0.25", got)
	}
}

func TestSqrtFeatures(t *testing.T) {
	tests := []struct{ in, want int }{
		{in: 1, want: 1},
		{in: 4, want: 2},
		{in: 10, want: 3},
	}
	for _, tt := range tests {
		if got := sqrtFeatures(tt.in); got != tt.want {
			t.Errorf("sqrtFeatures(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
