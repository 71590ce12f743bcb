package gridsearch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jamesainslie/go-gridsearch/boost"
	"github.com/jamesainslie/go-gridsearch/model"
)

func TestSaveModelJSON(t *testing.T) {
	trainX, trainY := blobs(20, 31)

	clf := model.NewLogisticRegression()
	if err := clf.Fit(trainX, trainY); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := SaveModel(clf, path); err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading model: %v", err)
	}
	var envelope struct {
		Family string `json:"family"`
		Model  struct {
			Coef []float64 `json:"Coef"`
		} `json:"model"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("model file is not JSON: %v", err)
	}
	if envelope.Family != "logisticregression" {
		t.Errorf("family = %q, want logisticregression", envelope.Family)
	}
	if len(envelope.Model.Coef) != 2 {
		t.Errorf("serialized %d coefficients, want 2", len(envelope.Model.Coef))
	}
}

// Families without a JSON model form fall back to gob: the binary goes
// to path+".gob" and the requested path gets a placeholder marker.
func TestSaveModelGobFallback(t *testing.T) {
	trainX, trainY := blobs(20, 37)

	clf := model.NewRandomForest()
	if err := clf.SetParams(map[string]any{"n_estimators": 5, "random_state": int64(1)}); err != nil {
		t.Fatalf("SetParams() failed: %v", err)
	}
	if err := clf.Fit(trainX, trainY); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := SaveModel(clf, path); err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}

	marker, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("fallback marker not written: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal(marker, &info); err != nil {
		t.Fatalf("marker is not JSON: %v", err)
	}
	if info["info"] != "could not save model in json format. Used gob instead" {
		t.Errorf("unexpected marker: %v", info)
	}

	loaded, err := LoadGobModel(path + ".gob")
	if err != nil {
		t.Fatalf("LoadGobModel() failed: %v", err)
	}

	want, err := clf.Predict(trainX)
	if err != nil {
		t.Fatalf("Predict() failed: %v", err)
	}
	got, err := loaded.Predict(trainX)
	if err != nil {
		t.Fatalf("loaded Predict() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded model predictions differ (-want +got):\n%s", diff)
	}
}

func TestSaveModelBoosted(t *testing.T) {
	trainX, trainY := blobs(20, 41)
	dtrain := boost.NewMatrix(trainX, trainY)

	booster, err := boost.Train(map[string]any{"max_depth": 2, "eta": 0.3, "objective": "binary:logistic"},
		dtrain, 5, 0, nil)
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "booster.json")
	if err := SaveModel(&BoostedModel{Booster: booster}, path); err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}

	loaded, err := boost.LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel() failed: %v", err)
	}

	want := booster.Predict(dtrain)
	got := loaded.Predict(dtrain)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded booster predictions differ (-want +got):\n%s", diff)
	}
}
