package gridsearch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tableForTest() *Table {
	mcc := func(v float64) Metrics { return Metrics{Accuracy: v, Sensitivity: v, Specificity: v, MCC: v} }
	return &Table{Rows: []Trial{
		{Index: 0, Params: Params{"C": 0.1}, Train: mcc(0.6), Validation: mcc(0.5)},
		{Index: 1, Params: Params{"C": 1.0}, Train: mcc(0.95), Validation: mcc(0.9)},
		{Index: 2, Params: Params{"C": 10.0}, Train: mcc(0.93), Validation: mcc(0.9)},
		{Index: 3, Params: Params{"C": 100.0}, Train: mcc(0.4), Validation: mcc(0.2)},
	}}
}

func TestSortByValidationMCC(t *testing.T) {
	table := tableForTest()
	table.sortByValidationMCC()

	got := make([]int, len(table.Rows))
	for i, r := range table.Rows {
		got[i] = r.Index
	}
	// Descending MCC; the 0.9 tie keeps enumeration order.
	want := []int{1, 2, 0, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted index order = %v, want %v", got, want)
		}
	}
}

func TestSummary(t *testing.T) {
	table := tableForTest()
	table.sortByValidationMCC()

	got := table.Summary()
	if !strings.Contains(got, `Best model params: {"C":1}`) {
		t.Errorf("summary missing best params line:\n%s", got)
	}
	if !strings.Contains(got, "Validation: Accuracy: 0.900") {
		t.Errorf("summary missing validation metrics line:\n%s", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Errorf("summary has %d lines, want 3:\n%s", len(lines), got)
	}
}

func TestSummaryEmpty(t *testing.T) {
	table := &Table{}
	if got := table.Summary(); got != "no trials" {
		t.Errorf("Summary() = %q, want %q", got, "no trials")
	}
}

func TestWriteTSV(t *testing.T) {
	table := tableForTest()
	table.sortByValidationMCC()

	path := filepath.Join(t.TempDir(), "results.tsv")
	if err := table.WriteTSV(path); err != nil {
		t.Fatalf("WriteTSV() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1+len(table.Rows) {
		t.Fatalf("got %d lines, want %d", len(lines), 1+len(table.Rows))
	}
	if !strings.HasPrefix(lines[0], "\tparams\ttrain_accuracy") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// First data row carries the pre-sort enumeration index.
	if !strings.HasPrefix(lines[1], "1\t") {
		t.Errorf("first data row = %q, want index 1 first", lines[1])
	}
	if !strings.Contains(lines[1], `{"C":1}`) {
		t.Errorf("params column missing from %q", lines[1])
	}
}
