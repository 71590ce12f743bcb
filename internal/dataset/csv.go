// Package dataset loads feature/label tables for the command-line
// front-ends.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Load reads a headered CSV into a feature matrix and 0/1 label
// vector. labelColumn selects the label by header name; when empty the
// last column is used. All other columns must parse as floats.
func Load(path, labelColumn string) (*mat.Dense, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := records[0]
	labelIdx := len(header) - 1
	if labelColumn != "" {
		labelIdx = -1
		for i, name := range header {
			if name == labelColumn {
				labelIdx = i
				break
			}
		}
		if labelIdx < 0 {
			return nil, nil, fmt.Errorf("%s: no column named %q", path, labelColumn)
		}
	}

	nRows := len(records) - 1
	nFeatures := len(header) - 1
	x := mat.NewDense(nRows, nFeatures, nil)
	y := make([]int, nRows)

	for r, record := range records[1:] {
		if len(record) != len(header) {
			return nil, nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, r+2, len(record), len(header))
		}
		col := 0
		for c, field := range record {
			if c == labelIdx {
				label, err := strconv.Atoi(field)
				if err != nil || (label != 0 && label != 1) {
					return nil, nil, fmt.Errorf("%s: row %d: label %q is not 0/1", path, r+2, field)
				}
				y[r] = label
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d column %q: %w", path, r+2, header[c], err)
			}
			x.Set(r, col, v)
			col++
		}
	}
	return x, y, nil
}
