// Package convergence turns a loaded error table into the plottable series
// the viewer renders: error magnitude against quadrature order for the
// single-layer and double-layer Galerkin matrices.
package convergence

import (
	"fmt"

	"github.com/piyushplcr7/2DParametricBEM/src/table"
)

// Series is one plottable measurement series: Y[i] is the error observed at
// order X[i]. Row order matches the source table.
type Series struct {
	Title string
	X     []float64
	Y     []float64
}

// Config holds the viewer's knobs. The defaults reproduce the historical
// hard-coded behavior: read convergence.txt and plot the two error columns
// under their original titles.
type Config struct {
	InputPath string
	Titles    [2]string
	XLabel    string
	YLabel    string
}

// DefaultConfig returns the literal values used by the original plot script.
// The capitalization mismatch between the two titles is preserved on purpose.
func DefaultConfig() Config {
	return Config{
		InputPath: "convergence.txt",
		Titles:    [2]string{"single layer", "Double layer"},
		XLabel:    "Order",
		YLabel:    "Error",
	}
}

// SeriesFromTable extracts one series from t: X is column 0, Y is column col.
// col must address an error column (anything but the order column itself).
func SeriesFromTable(t *table.Table, col int, title string) (Series, error) {
	if col <= 0 || col >= t.Cols() {
		return Series{}, fmt.Errorf("convergence: column %d out of range (table has %d columns)", col, t.Cols())
	}
	return Series{Title: title, X: t.Column(0), Y: t.Column(col)}, nil
}

// Series returns the two standard series (columns 1 and 2) with the
// configured titles.
func (c Config) Series(t *table.Table) ([]Series, error) {
	out := make([]Series, 0, 2)
	for i, col := range []int{1, 2} {
		s, err := SeriesFromTable(t, col, c.Titles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
