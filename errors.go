package gridsearch

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidSpace indicates a malformed hyperparameter space: an
	// empty grid or a parameter with no candidate values.
	ErrInvalidSpace = errors.New("gridsearch: invalid hyperparameter space")

	// ErrUnsupportedFamily indicates a model family name outside the
	// supported set.
	ErrUnsupportedFamily = errors.New("gridsearch: unsupported model family")

	// ErrUnsupportedSerialization indicates the model's family has no
	// JSON form; SaveModel falls back to gob when it sees this.
	ErrUnsupportedSerialization = errors.New("gridsearch: model does not support JSON serialization")
)
