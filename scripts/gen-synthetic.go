//go:build ignore

// Generate a linearly separable synthetic dataset split into train and
// validation CSVs, for trying the grid-cli and grid-bench binaries.
// Usage: go run ./scripts/gen-synthetic.go [-n 400] [-features 4] [-out testdata]
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	n := flag.Int("n", 400, "total samples")
	features := flag.Int("features", 4, "feature count")
	noise := flag.Float64("noise", 0.3, "feature noise standard deviation")
	seed := flag.Int64("seed", 1618, "random seed")
	out := flag.String("out", "testdata", "output directory")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Two Gaussian blobs offset along every feature axis.
	rows := make([][]float64, *n)
	labels := make([]int, *n)
	for i := range rows {
		label := i % 2
		labels[i] = label
		center := -1.0
		if label == 1 {
			center = 1.0
		}
		row := make([]float64, *features)
		for j := range row {
			row[j] = center + rng.NormFloat64()**noise
		}
		rows[i] = row
	}

	split := (*n * 3) / 4
	if err := writeCSV(filepath.Join(*out, "train.csv"), rows[:split], labels[:split]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(filepath.Join(*out, "validation.csv"), rows[split:], labels[split:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d train and %d validation rows to %s\n", split, *n-split, *out)
}

func writeCSV(path string, rows [][]float64, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]string, len(rows[0])+1)
	for j := range rows[0] {
		header[j] = fmt.Sprintf("f%d", j)
	}
	header[len(header)-1] = "label"
	fmt.Fprintln(f, strings.Join(header, ","))

	for i, row := range rows {
		fields := make([]string, len(row)+1)
		for j, v := range row {
			fields[j] = fmt.Sprintf("%g", v)
		}
		fields[len(fields)-1] = fmt.Sprintf("%d", labels[i])
		fmt.Fprintln(f, strings.Join(fields, ","))
	}
	return nil
}
