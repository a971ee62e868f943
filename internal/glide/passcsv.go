package glide

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// PassCSVWriter wraps csv.Writer with the mountain_passes.csv schema:
// name,x,y,weight.
type PassCSVWriter struct {
	w *csv.Writer
}

// NewPassCSVWriter creates a PassCSVWriter over w.
func NewPassCSVWriter(w io.Writer) *PassCSVWriter {
	return &PassCSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the mountain_passes.csv header row.
func (p *PassCSVWriter) WriteHeader() error {
	return p.w.Write([]string{"name", "x", "y", "weight"})
}

// WriteRow writes a single qualifying pass cell's world coordinates and
// weight. x and y are reprojected from the cell's local grid position using
// the subregion window and global DEM header carried in params.
func (p *PassCSVWriter) WriteRow(grid *Grid, params Params, c Cell) error {
	x := params.XllCorner + float64(grid.StartJ+c.J)*params.CellSizeM
	y := params.YllCorner + float64(params.GlobalNRows-1-grid.StartI-c.I)*params.CellSizeM
	return p.w.Write([]string{
		"pass",
		fmt.Sprintf("%g", x),
		fmt.Sprintf("%g", y),
		fmt.Sprintf("%d", c.Weight),
	})
}

// Flush flushes the underlying csv.Writer and returns its error, if any.
func (p *PassCSVWriter) Flush() error {
	p.w.Flush()
	return p.w.Error()
}

// WritePassesFile creates (or truncates) path and writes every qualifying
// pass from grid to it, using params.PassWeightThreshold as the weight
// cutoff. Writing an empty file (header only) is valid when there are no
// qualifying passes.
func WritePassesFile(path string, grid *Grid, params Params) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := NewPassCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("%s: writing header: %w", path, err)
	}

	for _, c := range QualifyingPasses(grid, params.PassWeightThreshold) {
		if err := w.WriteRow(grid, params, c); err != nil {
			return fmt.Errorf("%s: writing row: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
