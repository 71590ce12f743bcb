// Package report renders search-result visualizations.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteMCCPlot draws validation MCC against trial rank and saves the
// image at path (format chosen by extension, e.g. .png or .svg). NaN
// scores are skipped. mccs must already be in rank order.
func WriteMCCPlot(path string, mccs []float64) error {
	p := plot.New()
	p.Title.Text = "Grid search results"
	p.X.Label.Text = "trial rank"
	p.Y.Label.Text = "validation MCC"

	pts := make(plotter.XYs, 0, len(mccs))
	for i, mcc := range mccs {
		if math.IsNaN(mcc) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: mcc})
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("report: building plot: %w", err)
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: saving plot: %w", err)
	}
	return nil
}
