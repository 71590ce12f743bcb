package gridsearch

import (
	"fmt"
	"sort"
)

// Params is one concrete parameter assignment: name to chosen value.
type Params map[string]any

// Grid is one sub-grid of a hyperparameter space: parameter name to its
// ordered candidate values. Expansion takes the Cartesian product of a
// grid's value lists.
type Grid map[string][]any

// Grids is an ordered sequence of sub-grids. Each sub-grid expands
// independently; there are no cross-sub-grid combinations. Use this when
// some parameters are only meaningful together (kernel-dependent
// parameters, for example).
type Grids []Grid

// Space is a hyperparameter space: either a single Grid or a Grids
// sequence. The two shapes are the only implementations.
type Space interface {
	grids() []Grid
}

func (g Grid) grids() []Grid { return []Grid{g} }

func (gs Grids) grids() []Grid { return gs }

// Expand enumerates every concrete assignment in the space. A single
// grid yields its full Cartesian product in nested-loop order: keys in
// sorted order, values in declared order, right-most key varying
// fastest. A sequence of grids yields the concatenation of per-grid
// expansions in sequence order.
//
// Expand fails with ErrInvalidSpace when a grid is empty or any value
// list is empty; malformed grids are rejected rather than silently
// dropped.
func Expand(space Space) ([]Params, error) {
	var out []Params
	for i, g := range space.grids() {
		assignments, err := expandGrid(g)
		if err != nil {
			return nil, fmt.Errorf("sub-grid %d: %w", i, err)
		}
		out = append(out, assignments...)
	}
	return out, nil
}

func expandGrid(g Grid) ([]Params, error) {
	if len(g) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidSpace)
	}

	keys := make([]string, 0, len(g))
	total := 1
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(g[k]) == 0 {
			return nil, fmt.Errorf("%w: no candidate values for %q", ErrInvalidSpace, k)
		}
		total *= len(g[k])
	}

	out := make([]Params, 0, total)
	idx := make([]int, len(keys))
	for {
		p := make(Params, len(keys))
		for i, k := range keys {
			p[k] = g[k][idx[i]]
		}
		out = append(out, p)

		// Advance the odometer, right-most position first.
		j := len(keys) - 1
		for ; j >= 0; j-- {
			idx[j]++
			if idx[j] < len(g[keys[j]]) {
				break
			}
			idx[j] = 0
		}
		if j < 0 {
			break
		}
	}
	return out, nil
}
