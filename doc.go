// Package gridsearch evaluates classifier hyperparameter combinations
// exhaustively against a fixed train/validation split and selects the
// best configuration by validation-set Matthews correlation coefficient.
//
// # Quick Start
//
//	space := gridsearch.Grid{
//	    "n_neighbors": {1, 3, 5},
//	    "weights":     {"uniform", "distance"},
//	}
//
//	table, best, err := gridsearch.Search(trainX, trainY, valX, valY, "knn", space)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(table.Summary())
//	pred, _ := best.Predict(valX)
//
// # Model Families
//
// The family set is closed: svc, lda, qda, logisticregression,
// randomforest, gradientboosting, adaboost, knn, and xgboost (a
// dedicated boosting implementation in the boost package with its own
// matrix type and early stopping). Family names are case-insensitive.
// DefaultSpace returns a ready-made candidate grid for each family.
//
// # Determinism
//
// Stochastic families are seeded from WithSeed (default 1618), injected
// into every assignment before training. The search itself is fully
// sequential; parallelism set with WithParallelism is delegated to the
// individual model fits.
package gridsearch
