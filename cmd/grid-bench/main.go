package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gridsearch "github.com/jamesainslie/go-gridsearch"
	"github.com/jamesainslie/go-gridsearch/internal/dataset"
)

func main() {
	var (
		trainPath   = flag.String("train", "", "Training set CSV (required)")
		valPath     = flag.String("validation", "", "Validation set CSV (required)")
		labelColumn = flag.String("label", "", "Label column name (default: last column)")
		familyList  = flag.String("families", "", "Comma-separated families (default: all)")
		seed        = flag.Int64("seed", 1618, "Random seed for stochastic families")
		jobs        = flag.Int("jobs", 1, "Worker-count hint for model fits")
	)
	flag.Parse()

	if *trainPath == "" || *valPath == "" {
		fmt.Fprintln(os.Stderr, "error: -train and -validation are required")
		flag.Usage()
		os.Exit(1)
	}

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

	var names []string
	if *familyList != "" {
		names = strings.Split(*familyList, ",")
	} else {
		names = gridsearch.Families()
	}

	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	fmt.Println("Family Comparison")
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("%-20s %-8s %-10s %-10s %-10s\n", "Family", "Trials", "ValAcc", "ValMCC", "TrainMCC")

	for _, name := range names {
		name = strings.TrimSpace(name)
		space, err := gridsearch.DefaultSpace(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error with %s: %v\n", name, err)
			continue
		}

		table, _, err := gridsearch.Search(trainX, trainY, valX, valY, name, space,
			gridsearch.WithSeed(*seed),
			gridsearch.WithParallelism(*jobs),
			gridsearch.WithLogger(quiet))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error with %s: %v\n", name, err)
			continue
		}

		top := table.Rows[0]
		fmt.Printf("%-20s %-8d %-10.3f %-10.3f %-10.3f\n",
			name, len(table.Rows), top.Validation.Accuracy, top.Validation.MCC, top.Train.MCC)
	}
}
