// Package boost is a self-contained gradient-boosted-tree trainer for
// binary classification, modeled on the surface of dedicated boosting
// libraries: a native matrix type, a Train entry point with eval-set
// monitoring and early stopping, and a Booster with probability output
// and its own save format.
package boost

import "gonum.org/v1/gonum/mat"

// Matrix is the package-native dense representation of a feature table
// with optional 0/1 labels.
type Matrix struct {
	rows  int
	cols  int
	data  []float64 // row-major
	label []float64
}

// NewMatrix wraps a gonum dense matrix, copying its contents. labels
// may be nil for prediction-only matrices.
func NewMatrix(x *mat.Dense, labels []int) *Matrix {
	r, c := x.Dims()
	m := &Matrix{rows: r, cols: c, data: make([]float64, r*c)}
	for i := 0; i < r; i++ {
		mat.Row(m.data[i*c:(i+1)*c], i, x)
	}
	if labels != nil {
		m.label = make([]float64, len(labels))
		for i, y := range labels {
			m.label[i] = float64(y)
		}
	}
	return m
}

// NumRow returns the number of rows.
func (m *Matrix) NumRow() int { return m.rows }

// NumCol returns the number of feature columns.
func (m *Matrix) NumCol() int { return m.cols }

// HasLabel reports whether the matrix carries labels.
func (m *Matrix) HasLabel() bool { return m.label != nil }

func (m *Matrix) at(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Matrix) row(i int) []float64 { return m.data[i*m.cols : (i+1)*m.cols] }
