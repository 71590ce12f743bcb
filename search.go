package gridsearch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/jamesainslie/go-gridsearch/boost"
	"github.com/jamesainslie/go-gridsearch/internal/report"
	"github.com/jamesainslie/go-gridsearch/model"
)

// Model is a trained artifact returned by Search: either one of the
// model package's classifiers or a BoostedModel.
type Model interface {
	Predict(x *mat.Dense) ([]int, error)
}

// BoostedModel adapts a boost.Booster to the Model interface by
// thresholding its probability output at 0.5.
type BoostedModel struct {
	Booster *boost.Booster
}

// Predict returns 0/1 labels per row.
func (b *BoostedModel) Predict(x *mat.Dense) ([]int, error) {
	probs := b.Booster.Predict(boost.NewMatrix(x, nil))
	out := make([]int, len(probs))
	for i, p := range probs {
		if p > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

// Boosting-path training constants: a fixed round cap with early
// stopping on the validation set.
const (
	boostRounds        = 100
	boostEarlyStopping = 15
)

// families is the closed dispatch table from family name to
// constructor. The boosting path ("xgboost") is handled separately.
var families = map[string]func() model.Classifier{
	"svc":                func() model.Classifier { return model.NewSVC() },
	"lda":                func() model.Classifier { return model.NewLDA() },
	"qda":                func() model.Classifier { return model.NewQDA() },
	"logisticregression": func() model.Classifier { return model.NewLogisticRegression() },
	"randomforest":       func() model.Classifier { return model.NewRandomForest() },
	"gradientboosting":   func() model.Classifier { return model.NewGradientBoosting() },
	"adaboost":           func() model.Classifier { return model.NewAdaBoost() },
	"knn":                func() model.Classifier { return model.NewKNN() },
}

// stochastic families get the seed injected into every assignment.
var stochastic = map[string]bool{
	"svc":                true,
	"logisticregression": true,
	"gradientboosting":   true,
	"adaboost":           true,
	"randomforest":       true,
	"xgboost":            true,
}

// threaded families accept a worker-count hint as n_jobs.
var threaded = map[string]bool{
	"logisticregression": true,
	"knn":                true,
	"randomforest":       true,
}

// Families returns the supported family names in sorted order.
func Families() []string {
	out := make([]string, 0, len(families)+1)
	for name := range families {
		out = append(out, name)
	}
	out = append(out, "xgboost")
	sort.Strings(out)
	return out
}

// Search trains one model per expanded assignment of space on the
// training set, scores train and validation splits, and returns the
// result table sorted by validation MCC descending together with the
// best model. Family matching is case-insensitive. A failing fit aborts
// the whole search.
func Search(trainX *mat.Dense, trainY []int, valX *mat.Dense, valY []int, family string, space Space, opts ...Option) (*Table, Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	family = strings.ToLower(family)
	isBoost := family == "xgboost"
	ctor, known := families[family]
	if !known && !isBoost {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, family)
	}

	var dtrain, dval *boost.Matrix
	if isBoost {
		dtrain = boost.NewMatrix(trainX, trainY)
		dval = boost.NewMatrix(valX, valY)

		// Class-imbalance correction: search the raw negative/positive
		// ratio, its square root, and no correction.
		ci := classImbalance(trainY)
		space = augmentScalePosWeight(space, ci)
	}

	assignments, err := Expand(space)
	if err != nil {
		return nil, nil, err
	}

	cfg.logger.Debug("search started",
		"family", family, "trials", len(assignments), "seed", cfg.seed, "jobs", cfg.jobs)

	table := &Table{Rows: make([]Trial, 0, len(assignments))}
	bestMCC := -1.0
	var best Model

	for i, p := range assignments {
		if stochastic[family] {
			if isBoost {
				p["seed"] = cfg.seed
			} else {
				p["random_state"] = cfg.seed
			}
		}
		if threaded[family] {
			p["n_jobs"] = cfg.jobs
		}

		var trained Model
		var trainPred, valPred []int
		if isBoost {
			p["nthread"] = cfg.jobs
			p["objective"] = "binary:logistic"

			booster, err := boost.Train(p, dtrain, boostRounds, boostEarlyStopping,
				[]boost.Eval{{Matrix: dtrain, Name: "train"}, {Matrix: dval, Name: "validation"}})
			if err != nil {
				return nil, nil, fmt.Errorf("trial %d: %w", i, err)
			}
			trained = &BoostedModel{Booster: booster}
			trainPred = thresholdProbs(booster.Predict(dtrain))
			valPred = thresholdProbs(booster.Predict(dval))
		} else {
			clf := ctor()
			if err := clf.SetParams(p); err != nil {
				return nil, nil, fmt.Errorf("trial %d: %w", i, err)
			}
			if err := clf.Fit(trainX, trainY); err != nil {
				return nil, nil, fmt.Errorf("trial %d: %w", i, err)
			}
			var err error
			if trainPred, err = clf.Predict(trainX); err != nil {
				return nil, nil, fmt.Errorf("trial %d: %w", i, err)
			}
			if valPred, err = clf.Predict(valX); err != nil {
				return nil, nil, fmt.Errorf("trial %d: %w", i, err)
			}
			trained = clf
		}

		trainMetrics := ConfusionMatrix(trainY, trainPred).Metrics()
		valMetrics := ConfusionMatrix(valY, valPred).Metrics()

		// Strict improvement, so the first trial at the maximal MCC
		// stays best. Promotion takes a deep copy, insulating the
		// retained model from the loop's working state.
		if valMetrics.MCC > bestMCC {
			bestMCC = valMetrics.MCC
			if clf, ok := trained.(model.Classifier); ok {
				best = clf.Clone()
			} else {
				best = trained
			}
		}

		table.Rows = append(table.Rows, Trial{Index: i, Params: p, Train: trainMetrics, Validation: valMetrics})
		cfg.logger.Debug("trial complete", "trial", i, "validation_mcc", valMetrics.MCC)
	}

	table.sortByValidationMCC()
	for _, line := range strings.Split(table.Summary(), "\n") {
		cfg.logger.Info(line)
	}

	if cfg.modelPath != "" && best != nil {
		if err := SaveModel(best, cfg.modelPath); err != nil {
			return nil, nil, err
		}
	}
	if cfg.resultsPath != "" {
		if err := table.WriteTSV(cfg.resultsPath); err != nil {
			return nil, nil, err
		}
	}
	if cfg.plotPath != "" {
		mccs := make([]float64, len(table.Rows))
		for i, r := range table.Rows {
			mccs[i] = r.Validation.MCC
		}
		if err := report.WriteMCCPlot(cfg.plotPath, mccs); err != nil {
			return nil, nil, err
		}
	}

	return table, best, nil
}

// classImbalance is the negative/positive training label count ratio.
func classImbalance(y []int) float64 {
	var neg, pos float64
	for _, label := range y {
		if label == 0 {
			neg++
		} else {
			pos++
		}
	}
	return neg / pos
}

// augmentScalePosWeight adds the positive-class weighting candidates to
// every sub-grid without mutating the caller's space.
func augmentScalePosWeight(space Space, ci float64) Space {
	in := space.grids()
	out := make(Grids, len(in))
	for i, g := range in {
		ng := make(Grid, len(g)+1)
		for k, v := range g {
			ng[k] = v
		}
		ng["scale_pos_weight"] = []any{ci, math.Sqrt(ci), 1.0}
		out[i] = ng
	}
	return out
}

func thresholdProbs(probs []float64) []int {
	out := make([]int, len(probs))
	for i, p := range probs {
		if p > 0.5 {
			out[i] = 1
		}
	}
	return out
}
