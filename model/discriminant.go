package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LDA is linear discriminant analysis with a pooled covariance. For
// binary labels the decision rule collapses to a linear form, which is
// what gets stored after Fit.
type LDA struct {
	Solver string

	Coef      []float64
	Intercept float64
	Fitted    bool
}

// NewLDA returns an LDA using the svd solver.
func NewLDA() *LDA {
	return &LDA{Solver: "svd"}
}

func (l *LDA) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "solver":
			s, ok := stringParam(v)
			if !ok || s != "svd" {
				return badParam(name, v)
			}
			l.Solver = s
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (l *LDA) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	means, priors, err := classStats(rows, y)
	if err != nil {
		return fmt.Errorf("lda: %w", err)
	}
	d := len(rows[0])

	// Pooled within-class covariance, with a small ridge so the solve
	// below stays stable on degenerate features.
	pooled := mat.NewSymDense(d, nil)
	for i, row := range rows {
		m := means[y[i]]
		for a := 0; a < d; a++ {
			for b := a; b < d; b++ {
				pooled.SetSym(a, b, pooled.At(a, b)+(row[a]-m[a])*(row[b]-m[b]))
			}
		}
	}
	denom := float64(len(rows) - 2)
	if denom < 1 {
		denom = 1
	}
	for a := 0; a < d; a++ {
		for b := a; b < d; b++ {
			pooled.SetSym(a, b, pooled.At(a, b)/denom)
		}
		pooled.SetSym(a, a, pooled.At(a, a)+1e-9)
	}

	var ch mat.Cholesky
	if !ch.Factorize(pooled) {
		return fmt.Errorf("lda: pooled covariance is singular")
	}

	diff := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		diff.SetVec(j, means[1][j]-means[0][j])
	}
	var w mat.VecDense
	if err := ch.SolveVecTo(&w, diff); err != nil {
		return fmt.Errorf("lda: solving discriminant direction: %w", err)
	}

	// Decision boundary: w.x = w.(mu0+mu1)/2 - log(pi1/pi0).
	var mid float64
	for j := 0; j < d; j++ {
		mid += w.AtVec(j) * (means[0][j] + means[1][j]) / 2
	}

	l.Coef = make([]float64, d)
	for j := 0; j < d; j++ {
		l.Coef[j] = w.AtVec(j)
	}
	l.Intercept = -mid + math.Log(priors[1]/priors[0])
	l.Fitted = true
	return nil
}

func (l *LDA) Predict(x *mat.Dense) ([]int, error) {
	if !l.Fitted {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		z := l.Intercept
		for j, v := range row {
			z += l.Coef[j] * v
		}
		if z > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func (l *LDA) Clone() Classifier {
	out := *l
	out.Coef = copyFloats(l.Coef)
	return &out
}

// MarshalJSONModel serializes the linear decision rule.
func (l *LDA) MarshalJSONModel() ([]byte, error) {
	return marshalJSONModel("lda", l)
}

// QDA is quadratic discriminant analysis with per-class covariances
// regularized as (1-r)*Sigma + r*I.
type QDA struct {
	RegParam float64

	Means     [2][]float64
	InvCov    [2][][]float64
	LogDet    [2]float64
	LogPriors [2]float64
	Fitted    bool
}

// NewQDA returns a QDA with no regularization.
func NewQDA() *QDA {
	return &QDA{}
}

func (q *QDA) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "reg_param":
			f, ok := floatParam(v)
			if !ok || f < 0 || f > 1 {
				return badParam(name, v)
			}
			q.RegParam = f
		default:
			return unknownParam(name)
		}
	}
	return nil
}

func (q *QDA) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	means, priors, err := classStats(rows, y)
	if err != nil {
		return fmt.Errorf("qda: %w", err)
	}
	d := len(rows[0])

	for class := 0; class < 2; class++ {
		cov := mat.NewSymDense(d, nil)
		var count float64
		for i, row := range rows {
			if y[i] != class {
				continue
			}
			count++
			for a := 0; a < d; a++ {
				for b := a; b < d; b++ {
					cov.SetSym(a, b, cov.At(a, b)+(row[a]-means[class][a])*(row[b]-means[class][b]))
				}
			}
		}
		denom := count - 1
		if denom < 1 {
			denom = 1
		}
		for a := 0; a < d; a++ {
			for b := a; b < d; b++ {
				cov.SetSym(a, b, (1-q.RegParam)*cov.At(a, b)/denom)
			}
			cov.SetSym(a, a, cov.At(a, a)+q.RegParam)
		}

		var ch mat.Cholesky
		if !ch.Factorize(cov) {
			return fmt.Errorf("qda: class %d covariance is singular (reg_param=%g)", class, q.RegParam)
		}
		var inv mat.SymDense
		if err := ch.InverseTo(&inv); err != nil {
			return fmt.Errorf("qda: inverting class %d covariance: %w", class, err)
		}

		q.Means[class] = copyFloats(means[class])
		q.InvCov[class] = make([][]float64, d)
		for a := 0; a < d; a++ {
			q.InvCov[class][a] = make([]float64, d)
			for b := 0; b < d; b++ {
				q.InvCov[class][a][b] = inv.At(a, b)
			}
		}
		q.LogDet[class] = ch.LogDet()
		q.LogPriors[class] = math.Log(priors[class])
	}

	q.Fitted = true
	return nil
}

func (q *QDA) Predict(x *mat.Dense) ([]int, error) {
	if !q.Fitted {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		if q.score(row, 1) > q.score(row, 0) {
			out[i] = 1
		}
	}
	return out, nil
}

// score is the class log-posterior up to a shared constant.
func (q *QDA) score(row []float64, class int) float64 {
	d := len(row)
	diff := make([]float64, d)
	for j := range row {
		diff[j] = row[j] - q.Means[class][j]
	}
	var quad float64
	for a := 0; a < d; a++ {
		for b := 0; b < d; b++ {
			quad += diff[a] * q.InvCov[class][a][b] * diff[b]
		}
	}
	return -0.5*q.LogDet[class] - 0.5*quad + q.LogPriors[class]
}

func (q *QDA) Clone() Classifier {
	out := *q
	for class := 0; class < 2; class++ {
		out.Means[class] = copyFloats(q.Means[class])
		out.InvCov[class] = copyRows(q.InvCov[class])
	}
	return &out
}

// MarshalJSONModel serializes the per-class Gaussians.
func (q *QDA) MarshalJSONModel() ([]byte, error) {
	return marshalJSONModel("qda", q)
}

// classStats computes per-class means and priors, requiring both
// classes to be present.
func classStats(rows [][]float64, y []int) (means [2][]float64, priors [2]float64, err error) {
	if len(rows) == 0 {
		return means, priors, fmt.Errorf("empty training set")
	}
	d := len(rows[0])
	var counts [2]float64
	means[0] = make([]float64, d)
	means[1] = make([]float64, d)
	for i, row := range rows {
		counts[y[i]]++
		for j, v := range row {
			means[y[i]][j] += v
		}
	}
	if counts[0] == 0 || counts[1] == 0 {
		return means, priors, fmt.Errorf("training set must contain both classes")
	}
	for class := 0; class < 2; class++ {
		for j := range means[class] {
			means[class][j] /= counts[class]
		}
		priors[class] = counts[class] / float64(len(rows))
	}
	return means, priors, nil
}
