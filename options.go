package gridsearch

import "log/slog"

// Option configures a Search call.
type Option func(*config)

type config struct {
	seed        int64
	jobs        int
	logger      *slog.Logger
	modelPath   string
	resultsPath string
	plotPath    string
}

func defaultConfig() config {
	return config{
		seed:   1618,
		jobs:   1,
		logger: slog.Default(),
	}
}

// WithSeed sets the random seed injected into stochastic model
// assignments (default: 1618).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithParallelism sets the worker-count hint passed to model fits that
// accept one (default: 1). It does not parallelize the search loop.
func WithParallelism(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.jobs = n
		}
	}
}

// WithModelPath persists the best model to the given path after the
// search completes.
func WithModelPath(path string) Option {
	return func(c *config) {
		c.modelPath = path
	}
}

// WithResultsPath writes the full result table to the given path as
// tab-separated text after the search completes.
func WithResultsPath(path string) Option {
	return func(c *config) {
		c.resultsPath = path
	}
}

// WithPlotPath renders a validation-MCC-by-rank plot to the given path
// after the search completes.
func WithPlotPath(path string) Option {
	return func(c *config) {
		c.plotPath = path
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
