package boost

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

// blobs samples n points per class from two separated Gaussian clusters.
func blobs(n int, seed int64) *Matrix {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(2*n, 2, nil)
	labels := make([]int, 2*n)
	for i := 0; i < 2*n; i++ {
		class := i % 2
		labels[i] = class
		center := -2.0
		if class == 1 {
			center = 2.0
		}
		x.SetRow(i, []float64{center + rng.NormFloat64()*0.5, center + rng.NormFloat64()*0.5})
	}
	return NewMatrix(x, labels)
}

func TestMatrix(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	m := NewMatrix(x, []int{0, 1, 0})
	if m.NumRow() != 3 || m.NumCol() != 2 {
		t.Errorf("dims = %dx%d, want 3x2", m.NumRow(), m.NumCol())
	}
	if !m.HasLabel() {
		t.Error("HasLabel() = false, want true")
	}
	if got := m.at(1, 1); got != 4 {
		t.Errorf("at(1,1) = %v, want 4", got)
	}

	unlabeled := NewMatrix(x, nil)
	if unlabeled.HasLabel() {
		t.Error("HasLabel() = true for nil labels")
	}
}

func TestTrainSeparable(t *testing.T) {
	dtrain := blobs(20, 1)

	booster, err := Train(map[string]any{
		"objective": "binary:logistic",
		"max_depth": 2,
		"eta":       0.3,
	}, dtrain, 10, 0, []Eval{{Matrix: dtrain, Name: "train"}})
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	probs := booster.Predict(dtrain)
	for i, p := range probs {
		want := dtrain.label[i]
		if (want == 1) != (p > 0.5) {
			t.Errorf("row %d: probability %v for label %v", i, p, want)
		}
	}
}

func TestTrainEarlyStopping(t *testing.T) {
	dtrain := blobs(20, 3)

	// Validation labels are the training labels flipped, so validation
	// logloss only worsens and stopping triggers almost immediately.
	flippedX := mat.NewDense(dtrain.NumRow(), dtrain.NumCol(), nil)
	flipped := make([]int, dtrain.NumRow())
	for i := 0; i < dtrain.NumRow(); i++ {
		flippedX.SetRow(i, dtrain.row(i))
		flipped[i] = 1 - int(dtrain.label[i])
	}
	dval := NewMatrix(flippedX, flipped)

	booster, err := Train(map[string]any{"objective": "binary:logistic", "max_depth": 2},
		dtrain, 100, 5,
		[]Eval{{Matrix: dtrain, Name: "train"}, {Matrix: dval, Name: "validation"}})
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	if len(booster.Trees) >= 100 {
		t.Errorf("trained %d rounds, expected early stop", len(booster.Trees))
	}
	if booster.BestIteration < 1 || booster.BestIteration > len(booster.Trees) {
		t.Errorf("BestIteration = %d with %d trees", booster.BestIteration, len(booster.Trees))
	}
	if booster.BestIteration > 3 {
		t.Errorf("BestIteration = %d, expected the earliest rounds to score best", booster.BestIteration)
	}
}

func TestTrainNoEvals(t *testing.T) {
	dtrain := blobs(10, 5)

	booster, err := Train(map[string]any{"objective": "binary:logistic"}, dtrain, 5, 0, nil)
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if booster.BestIteration != len(booster.Trees) {
		t.Errorf("BestIteration = %d, want %d", booster.BestIteration, len(booster.Trees))
	}
	if math.IsInf(booster.BestScore, 0) || math.IsNaN(booster.BestScore) {
		t.Errorf("BestScore = %v, want finite training logloss", booster.BestScore)
	}
}

func TestTrainUnlabeled(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	if _, err := Train(nil, NewMatrix(x, nil), 5, 0, nil); err == nil {
		t.Fatal("expected error for unlabeled training matrix")
	}
}

func TestTrainUnsupportedObjective(t *testing.T) {
	dtrain := blobs(5, 7)

	_, err := Train(map[string]any{"objective": "reg:squarederror"}, dtrain, 5, 0, nil)
	if !errors.Is(err, ErrUnsupportedObjective) {
		t.Errorf("expected ErrUnsupportedObjective, got: %v", err)
	}
}

func TestTrainBadParams(t *testing.T) {
	dtrain := blobs(5, 7)

	tests := []struct {
		name   string
		params map[string]any
	}{
		{name: "eta above one", params: map[string]any{"eta": 2.0}},
		{name: "negative gamma", params: map[string]any{"gamma": -1.0}},
		{name: "zero subsample", params: map[string]any{"subsample": 0.0}},
		{name: "unknown name", params: map[string]any{"min_child_weight": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Train(tt.params, dtrain, 5, 0, nil); err == nil {
				t.Error("expected parameter error")
			} else if !strings.Contains(err.Error(), "boost:") {
				t.Errorf("unexpected error text: %v", err)
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dtrain := blobs(15, 9)

	booster, err := Train(map[string]any{"objective": "binary:logistic", "max_depth": 3},
		dtrain, 8, 0, []Eval{{Matrix: dtrain, Name: "train"}})
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "booster.json")
	if err := booster.SaveModel(path); err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}
	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel() failed: %v", err)
	}

	if loaded.BestIteration != booster.BestIteration {
		t.Errorf("BestIteration = %d, want %d", loaded.BestIteration, booster.BestIteration)
	}
	if diff := cmp.Diff(booster.Predict(dtrain), loaded.Predict(dtrain)); diff != "" {
		t.Errorf("predictions differ after roundtrip (-want +got):\n%s", diff)
	}
}

func TestLoadModelRejectsBadBestIteration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"trees":[],"base_score":0,"best_iteration":3,"best_score":0}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadModel(path); err == nil {
		t.Error("expected error for best_iteration past tree count")
	}
}
