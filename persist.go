package gridsearch

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jamesainslie/go-gridsearch/model"
)

func init() {
	// Concrete types crossing the gob fallback as model.Classifier.
	gob.Register(&model.SVC{})
	gob.Register(&model.RandomForest{})
	gob.Register(&model.GradientBoosting{})
	gob.Register(&model.AdaBoost{})
	gob.Register(&model.KNN{})
	gob.Register(&model.LDA{})
	gob.Register(&model.QDA{})
	gob.Register(&model.LogisticRegression{})
}

// SaveModel persists a trained model. Boosted models use the boost
// package's native format. Classifier families with a JSON model form
// are written as JSON; for the rest the model is gob-encoded to
// path+".gob" and a placeholder JSON marker describing the fallback is
// written at the requested path.
func SaveModel(m Model, path string) error {
	if bm, ok := m.(*BoostedModel); ok {
		return bm.Booster.SaveModel(path)
	}

	clf, ok := m.(model.Classifier)
	if !ok {
		return fmt.Errorf("gridsearch: cannot persist model of type %T", m)
	}

	err := saveJSON(clf, path)
	if errors.Is(err, ErrUnsupportedSerialization) {
		if err := saveGob(clf, path+".gob"); err != nil {
			return err
		}
		return writeFallbackMarker(path)
	}
	return err
}

func saveJSON(clf model.Classifier, path string) error {
	jm, ok := clf.(model.JSONMarshaler)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedSerialization, clf)
	}
	data, err := jm.MarshalJSONModel()
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	return nil
}

func saveGob(clf model.Classifier, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := gob.NewEncoder(f).Encode(&clf); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return nil
}

// LoadGobModel reads a classifier written by the gob fallback.
func LoadGobModel(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	defer func() { _ = f.Close() }()

	var clf model.Classifier
	if err := gob.NewDecoder(f).Decode(&clf); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return clf, nil
}

func writeFallbackMarker(path string) error {
	marker, _ := json.Marshal(map[string]string{
		"info": "could not save model in json format. Used gob instead",
	})
	if err := os.WriteFile(path, marker, 0o644); err != nil {
		return fmt.Errorf("writing fallback marker: %w", err)
	}
	return nil
}
