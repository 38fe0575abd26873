// Package visual renders value functions for human inspection
package visual

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// valueGrid adapts a matrix of state values to the plotter grid
// interface. Row 0 of the matrix is drawn at the top of the plot, the
// way grids are usually pictured.
type valueGrid struct {
	m mat.Matrix
}

func (g valueGrid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g valueGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g valueGrid) X(c int) float64 {
	return float64(c)
}

func (g valueGrid) Y(r int) float64 {
	return float64(r)
}

// SaveHeatmap renders a matrix of state values as a heat map and saves
// it as an image at filename. The file extension selects the image
// format.
func SaveHeatmap(values mat.Matrix, title, filename string) error {
	p := plot.New()
	p.Title.Text = title

	colors := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(valueGrid{values}, colors))

	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("saveHeatmap: %v", err)
	}
	return nil
}
