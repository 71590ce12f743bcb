package boost

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Tree is one boosted regression tree. Leaf values already include the
// learning-rate shrinkage applied at training time.
type Tree struct {
	Root *Node `json:"root"`
}

// Node is one split or leaf; leaves have nil children.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
	Leaf      float64 `json:"leaf"`
}

func (t *Tree) predictRow(row []float64) float64 {
	n := t.Root
	for n.Left != nil {
		if row[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Leaf
}

// Booster is a trained boosted-tree model.
type Booster struct {
	Trees []*Tree `json:"trees"`
	// BaseScore is the global margin offset before any tree.
	BaseScore float64 `json:"base_score"`
	// BestIteration is the tree count selected by early stopping;
	// Predict uses trees [0, BestIteration). Equal to len(Trees) when
	// training ran to completion.
	BestIteration int     `json:"best_iteration"`
	BestScore     float64 `json:"best_score"`
}

// Predict returns the positive-class probability per row, using the
// trees up to the early-stopped best iteration.
func (b *Booster) Predict(m *Matrix) []float64 {
	out := make([]float64, m.NumRow())
	for i := range out {
		row := m.row(i)
		margin := b.BaseScore
		for _, t := range b.Trees[:b.BestIteration] {
			margin += t.predictRow(row)
		}
		out[i] = 1 / (1 + math.Exp(-margin))
	}
	return out
}

// SaveModel writes the booster in the package's JSON tree-dump format.
func (b *Booster) SaveModel(path string) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("boost: encoding model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("boost: saving model: %w", err)
	}
	return nil
}

// LoadModel reads a booster saved with SaveModel.
func LoadModel(path string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boost: reading model: %w", err)
	}
	var b Booster
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("boost: decoding model: %w", err)
	}
	if b.BestIteration > len(b.Trees) || b.BestIteration < 0 {
		return nil, fmt.Errorf("boost: model best_iteration %d out of range", b.BestIteration)
	}
	return &b, nil
}
