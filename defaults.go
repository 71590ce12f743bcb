package gridsearch

import (
	"fmt"
	"strings"
)

// defaultSpaces holds the candidate hyperparameter ranges searched per
// family when the caller supplies no space of their own. Plain
// configuration data; edit freely.
var defaultSpaces = map[string]Space{
	"svc": Grids{
		{
			"C":      {0.001, 0.01, 0.1, 1.0, 10.0, 100.0},
			"kernel": {"linear"},
		},
		{
			"C":      {0.001, 0.01, 0.1, 1.0, 10.0, 100.0},
			"kernel": {"rbf"},
			"gamma":  {"auto", 0.01, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.8},
		},
	},
	"lda": Grids{
		{"solver": {"svd"}},
	},
	"qda": Grid{
		"reg_param": {0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	},
	"logisticregression": Grids{
		{
			"penalty":      {"l2"},
			"solver":       {"liblinear", "lbfgs"},
			"C":            {0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 100.0},
			"max_iter":     {500},
			"class_weight": {"balanced", nil},
		},
	},
	"randomforest": Grid{
		"n_estimators":     {100},
		"max_depth":        {4, 6, 8, 10},
		"min_samples_leaf": {2, 4, 6, 8, 10},
		"max_features":     {"sqrt"},
		"class_weight":     {"balanced"},
		"bootstrap":        {true, false},
	},
	"gradientboosting": Grid{
		"n_estimators":      {100, 500, 1000, 5000},
		"learning_rate":     {0.001, 0.01, 0.1, 1.0},
		"subsample":         {0.3, 0.7, 1.0},
		"min_samples_split": {2, 3, 4},
	},
	"adaboost": Grid{
		"n_estimators":  {100, 500, 1000, 5000},
		"learning_rate": {0.001, 0.01, 0.1, 1.0},
	},
	"knn": Grid{
		"n_neighbors": {2, 3, 5, 7},
		"weights":     {"uniform", "distance"},
		"algorithm":   {"auto"},
	},
	"xgboost": Grid{
		"max_depth":        {2, 3, 6, 8},
		"eta":              {0.01, 0.1, 0.3, 1.0},
		"gamma":            {0.0, 0.01, 0.1, 1.0, 10.0},
		"subsample":        {0.2, 0.4, 0.6, 0.8, 1.0},
		"lambda":           {0.1, 1.0, 10.0, 100.0},
		"colsample_bytree": {0.2, 0.4, 0.6, 0.8},
	},
}

// DefaultSpace returns the built-in candidate grid for a family.
// Matching is case-insensitive.
func DefaultSpace(family string) (Space, error) {
	space, ok := defaultSpaces[strings.ToLower(family)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, family)
	}
	return space, nil
}
