package gridsearch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSpace decodes a YAML hyperparameter space. Both shapes are
// accepted: a single mapping from parameter name to a value list, or a
// sequence of such mappings (sub-grids).
//
//	n_neighbors: [2, 3, 5, 7]
//	weights: [uniform, distance]
//
//	- {C: [0.1, 1, 10], kernel: [linear]}
//	- {C: [0.1, 1, 10], kernel: [rbf], gamma: [auto, 0.1, 0.5]}
func ParseSpace(data []byte) (Space, error) {
	var many []Grid
	if err := yaml.Unmarshal(data, &many); err == nil {
		return Grids(many), nil
	}

	var one Grid
	if err := yaml.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("%w: not a mapping or sequence of mappings: %v", ErrInvalidSpace, err)
	}
	return one, nil
}

// LoadSpace reads and parses a YAML hyperparameter space file.
func LoadSpace(path string) (Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading space file: %w", err)
	}
	space, err := ParseSpace(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return space, nil
}
