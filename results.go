package gridsearch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Trial is one row of the result table: the assignment that was trained
// and its metrics on both splits. Index is the enumeration order the
// assignment had before sorting.
type Trial struct {
	Index      int
	Params     Params
	Train      Metrics
	Validation Metrics
}

// Table is the full result table of a search.
type Table struct {
	Rows []Trial
}

// sortByValidationMCC orders rows by validation MCC descending. The
// sort is stable so tied rows keep their enumeration order.
func (t *Table) sortByValidationMCC() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Validation.MCC > t.Rows[j].Validation.MCC
	})
}

// Summary formats the top row's assignment and metrics for humans.
func (t *Table) Summary() string {
	if len(t.Rows) == 0 {
		return "no trials"
	}
	top := t.Rows[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Best model params: %s\n", formatParams(top.Params))
	fmt.Fprintf(&b, "Train:      Accuracy: %3.3f, Sensitivity: %3.3f, Specificity: %3.3f, MCC: %.3f\n",
		top.Train.Accuracy, top.Train.Sensitivity, top.Train.Specificity, top.Train.MCC)
	fmt.Fprintf(&b, "Validation: Accuracy: %3.3f, Sensitivity: %3.3f, Specificity: %3.3f, MCC: %.3f",
		top.Validation.Accuracy, top.Validation.Sensitivity, top.Validation.Specificity, top.Validation.MCC)
	return b.String()
}

// WriteTSV writes the table as tab-separated text. The first column is
// the trial's enumeration index; the params column is compact JSON.
func (t *Table) WriteTSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "\tparams\ttrain_accuracy\ttrain_sensitivity\ttrain_specificity\ttrain_mcc"+
		"\tvalidation_accuracy\tvalidation_sensitivity\tvalidation_specificity\tvalidation_mcc")
	for _, r := range t.Rows {
		fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
			r.Index, formatParams(r.Params),
			r.Train.Accuracy, r.Train.Sensitivity, r.Train.Specificity, r.Train.MCC,
			r.Validation.Accuracy, r.Validation.Sensitivity, r.Validation.Specificity, r.Validation.MCC)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// formatParams renders an assignment as compact JSON with sorted keys.
func formatParams(p Params) string {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(p))
	}
	return string(data)
}
