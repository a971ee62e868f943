// Package visualize renders an altitude field, and the mountain passes
// detected on it, to a PNG heat map. It is adapted from the ring-plotting
// machinery used elsewhere in this codebase to chart grid cell state over
// time, substituting a single static heat map for the line-per-cell time
// series that use case called for.
package visualize

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/glidepath/internal/glide"
)

// altitudeGridXYZ adapts a glide.Grid's Altitude field to plotter.GridXYZ,
// indexing columns as X and rows as Y so the rendered image matches the
// ASCII grid's own row/column orientation.
type altitudeGridXYZ struct {
	grid *glide.Grid
}

func (a altitudeGridXYZ) Dims() (c, r int) { return a.grid.NCols, a.grid.NRows }

func (a altitudeGridXYZ) Z(c, r int) float64 {
	return a.grid.At(r, c).Altitude
}

func (a altitudeGridXYZ) X(c int) float64 { return float64(c) }

func (a altitudeGridXYZ) Y(r int) float64 { return float64(a.grid.NRows - 1 - r) }

// PassMarker is a single qualifying mountain pass to overlay on the
// rendered heat map, in the same local grid coordinates as the altitude
// field.
type PassMarker struct {
	I, J   int
	Weight uint64
}

// RenderAltitudeField writes a PNG heat map of grid's altitude field to
// path. passes, if non-empty, is overlaid as a scatter of red markers, one
// per qualifying mountain pass.
func RenderAltitudeField(path string, grid *glide.Grid, title string, passes []PassMarker) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	pal := palette.Heat(256, 255)
	heat := plotter.NewHeatMap(altitudeGridXYZ{grid: grid}, pal)
	p.Add(heat)

	if len(passes) > 0 {
		pts := make(plotter.XYs, len(passes))
		for i, m := range passes {
			pts[i] = plotter.XY{X: float64(m.J), Y: float64(grid.NRows - 1 - m.I)}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("building pass overlay: %w", err)
		}
		scatter.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("mountain passes", scatter)
	}

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// PassMarkersFromGrid collects every qualifying pass on grid as PassMarkers
// for RenderAltitudeField, using threshold as the minimum weight.
func PassMarkersFromGrid(grid *glide.Grid, threshold uint64) []PassMarker {
	var out []PassMarker
	for _, c := range glide.QualifyingPasses(grid, threshold) {
		out = append(out, PassMarker{I: c.I, J: c.J, Weight: c.Weight})
	}
	return out
}
