package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SVC is a C-support-vector classifier trained with a simplified SMO
// solver. Kernels: linear and rbf.
type SVC struct {
	C      float64
	Kernel string
	// Gamma is the rbf width; GammaAuto selects 1/n_features at fit
	// time, matching the "auto" setting.
	Gamma     float64
	GammaAuto bool
	Seed      int64

	SupportX [][]float64
	SupportY []float64 // +1/-1
	Alphas   []float64
	B        float64
	FitGamma float64
}

// NewSVC returns an rbf SVC with C=1 and gamma=auto.
func NewSVC() *SVC {
	return &SVC{C: 1.0, Kernel: "rbf", GammaAuto: true}
}

func (s *SVC) SetParams(params map[string]any) error {
	for name, v := range params {
		switch name {
		case "C":
			f, ok := floatParam(v)
			if !ok || f <= 0 {
				return badParam(name, v)
			}
			s.C = f
		case "kernel":
			k, ok := stringParam(v)
			if !ok || (k != "linear" && k != "rbf") {
				return badParam(name, v)
			}
			s.Kernel = k
		case "gamma":
			if g, ok := stringParam(v); ok {
				if g != "auto" {
					return badParam(name, v)
				}
				s.GammaAuto = true
				continue
			}
			f, ok := floatParam(v)
			if !ok || f <= 0 {
				return badParam(name, v)
			}
			s.Gamma = f
			s.GammaAuto = false
		case "random_state":
			seed, ok := int64Param(v)
			if !ok {
				return badParam(name, v)
			}
			s.Seed = seed
		default:
			return unknownParam(name)
		}
	}
	return nil
}

const (
	smoTolerance = 1e-3
	smoMaxPasses = 10
	smoMaxIters  = 500
)

func (s *SVC) Fit(x *mat.Dense, y []int) error {
	rows := matrixRows(x)
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("svc: empty training set")
	}

	gamma := s.Gamma
	if s.GammaAuto {
		gamma = 1 / float64(len(rows[0]))
	}

	labels := make([]float64, n)
	for i, label := range y {
		labels[i] = 2*float64(label) - 1
	}

	kernel := func(a, b []float64) float64 {
		if s.Kernel == "linear" {
			var dot float64
			for j := range a {
				dot += a[j] * b[j]
			}
			return dot
		}
		var d float64
		for j := range a {
			diff := a[j] - b[j]
			d += diff * diff
		}
		return math.Exp(-gamma * d)
	}

	// Precomputed kernel matrix; the training sets this targets are
	// small enough that O(n^2) memory is the cheaper trade.
	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			v := kernel(rows[i], rows[j])
			gram[i][j] = v
			gram[j][i] = v
		}
	}

	alphas := make([]float64, n)
	b := 0.0
	rng := rand.New(rand.NewSource(s.Seed))

	decision := func(i int) float64 {
		var sum float64
		for j := 0; j < n; j++ {
			if alphas[j] != 0 {
				sum += alphas[j] * labels[j] * gram[j][i]
			}
		}
		return sum + b
	}

	passes := 0
	for iter := 0; passes < smoMaxPasses && iter < smoMaxIters; iter++ {
		changed := 0
		for i := 0; i < n; i++ {
			ei := decision(i) - labels[i]
			if !((labels[i]*ei < -smoTolerance && alphas[i] < s.C) ||
				(labels[i]*ei > smoTolerance && alphas[i] > 0)) {
				continue
			}

			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			ej := decision(j) - labels[j]

			aiOld, ajOld := alphas[i], alphas[j]
			var lo, hi float64
			if labels[i] != labels[j] {
				lo = math.Max(0, ajOld-aiOld)
				hi = math.Min(s.C, s.C+ajOld-aiOld)
			} else {
				lo = math.Max(0, aiOld+ajOld-s.C)
				hi = math.Min(s.C, aiOld+ajOld)
			}
			if lo == hi {
				continue
			}

			eta := 2*gram[i][j] - gram[i][i] - gram[j][j]
			if eta >= 0 {
				continue
			}

			aj := ajOld - labels[j]*(ei-ej)/eta
			if aj > hi {
				aj = hi
			} else if aj < lo {
				aj = lo
			}
			if math.Abs(aj-ajOld) < 1e-5 {
				continue
			}
			ai := aiOld + labels[i]*labels[j]*(ajOld-aj)

			alphas[i], alphas[j] = ai, aj

			b1 := b - ei - labels[i]*(ai-aiOld)*gram[i][i] - labels[j]*(aj-ajOld)*gram[i][j]
			b2 := b - ej - labels[i]*(ai-aiOld)*gram[i][j] - labels[j]*(aj-ajOld)*gram[j][j]
			switch {
			case ai > 0 && ai < s.C:
				b = b1
			case aj > 0 && aj < s.C:
				b = b2
			default:
				b = (b1 + b2) / 2
			}
			changed++
		}
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	// Keep support vectors only.
	s.SupportX = s.SupportX[:0]
	s.SupportY = s.SupportY[:0]
	s.Alphas = s.Alphas[:0]
	for i, a := range alphas {
		if a > 1e-8 {
			s.SupportX = append(s.SupportX, copyFloats(rows[i]))
			s.SupportY = append(s.SupportY, labels[i])
			s.Alphas = append(s.Alphas, a)
		}
	}
	s.B = b
	s.FitGamma = gamma

	if len(s.SupportX) == 0 {
		return fmt.Errorf("svc: no support vectors found (C=%g)", s.C)
	}
	return nil
}

func (s *SVC) Predict(x *mat.Dense) ([]int, error) {
	if len(s.SupportX) == 0 {
		return nil, ErrNotFitted
	}
	rows := matrixRows(x)
	out := make([]int, len(rows))
	for i, row := range rows {
		sum := s.B
		for v, sv := range s.SupportX {
			var k float64
			if s.Kernel == "linear" {
				for j := range row {
					k += row[j] * sv[j]
				}
			} else {
				var d float64
				for j := range row {
					diff := row[j] - sv[j]
					d += diff * diff
				}
				k = math.Exp(-s.FitGamma * d)
			}
			sum += s.Alphas[v] * s.SupportY[v] * k
		}
		if sum > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func (s *SVC) Clone() Classifier {
	out := *s
	out.SupportX = copyRows(s.SupportX)
	out.SupportY = copyFloats(s.SupportY)
	out.Alphas = copyFloats(s.Alphas)
	return &out
}
