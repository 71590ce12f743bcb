package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gridsearch "github.com/jamesainslie/go-gridsearch"
	"github.com/jamesainslie/go-gridsearch/internal/dataset"
)

func main() {
	var (
		trainPath   = flag.String("train", "", "Training set CSV (required)")
		valPath     = flag.String("validation", "", "Validation set CSV (required)")
		labelColumn = flag.String("label", "", "Label column name (default: last column)")
		family      = flag.String("family", "", "Model family (required)")
		spacePath   = flag.String("space", "", "YAML hyperparameter space (default: built-in per-family space)")
		seed        = flag.Int64("seed", 1618, "Random seed for stochastic families")
		jobs        = flag.Int("jobs", 1, "Worker-count hint for model fits")
		modelOut    = flag.String("model-out", "", "Persist the best model here")
		resultsOut  = flag.String("results-out", "", "Write the result table here as TSV")
		plotOut     = flag.String("plot-out", "", "Render a validation-MCC plot here")
		topN        = flag.Int("top", 5, "Number of top trials to print")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *trainPath == "" || *valPath == "" || *family == "" {
		fmt.Fprintln(os.Stderr, "error: -train, -validation and -family are required")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	trainX, trainY, err := dataset.Load(*trainPath, *labelColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading training set: %v\n", err)
		os.Exit(1)
	}
	valX, valY, err := dataset.Load(*valPath, *labelColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading validation set: %v\n", err)
		os.Exit(1)
	}

	var space gridsearch.Space
	if *spacePath != "" {
		space, err = gridsearch.LoadSpace(*spacePath)
	} else {
		space, err = gridsearch.DefaultSpace(*family)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := []gridsearch.Option{
		gridsearch.WithSeed(*seed),
		gridsearch.WithParallelism(*jobs),
		gridsearch.WithLogger(logger),
	}
	if *modelOut != "" {
		opts = append(opts, gridsearch.WithModelPath(*modelOut))
	}
	if *resultsOut != "" {
		opts = append(opts, gridsearch.WithResultsPath(*resultsOut))
	}
	if *plotOut != "" {
		opts = append(opts, gridsearch.WithPlotPath(*plotOut))
	}

	table, _, err := gridsearch.Search(trainX, trainY, valX, valY, *family, space, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during search: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(table.Summary())
	fmt.Println()

	n := *topN
	if n > len(table.Rows) {
		n = len(table.Rows)
	}
	fmt.Printf("Top %d of %d trials:\n", n, len(table.Rows))
	fmt.Printf("%-6s %-10s %-10s %-10s %-10s\n", "Trial", "ValAcc", "ValSens", "ValSpec", "ValMCC")
	for _, r := range table.Rows[:n] {
		fmt.Printf("%-6d %-10.3f %-10.3f %-10.3f %-10.3f\n",
			r.Index, r.Validation.Accuracy, r.Validation.Sensitivity, r.Validation.Specificity, r.Validation.MCC)
	}
}
