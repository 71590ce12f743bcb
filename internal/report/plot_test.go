package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteMCCPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcc.png")

	mccs := []float64{0.9, 0.85, math.NaN(), 0.4, -0.1}
	if err := WriteMCCPlot(path, mccs); err != nil {
		t.Fatalf("WriteMCCPlot() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestWriteMCCPlotBadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcc.xyz")
	if err := WriteMCCPlot(path, []float64{0.5}); err == nil {
		t.Error("expected error for unknown image format")
	}
}
