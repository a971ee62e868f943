// Package glide implements the safe-altitude propagation engine: the
// cell-origin data model, the line-of-sight check over a grid, the
// worklist-driven propagation that elects a glide-slope origin for every
// cell reachable from a home cell, and the dependent pass detection and
// weighting pass.
package glide

import (
	"fmt"
	"math"
)

// DefaultPassWeightThreshold is the minimum weight (exclusive) a mountain
// pass cell must accumulate before it is emitted. Exposed on Params rather
// than hard-coded so a caller could override the heuristic without
// touching engine code; the CLI does not currently expose a flag for it.
const DefaultPassWeightThreshold = 100

// Params is the immutable bundle of geometric and policy scalars that
// configure a single run of the propagation engine. Build one with
// NewParams; all fields are read-only afterward.
type Params struct {
	HomeX, HomeY float64

	Finesse  int // glide ratio: meters forward per meter of altitude lost
	DistSol  int // vertical clearance added to every terrain elevation
	Securite int // starting altitude margin above the home cell's ground

	// NodataAltitude is the dual-purpose sentinel: both the "unreachable"
	// marker in outputs and the horizon beyond which the engine refuses
	// to propagate further.
	NodataAltitude int

	CellSizeM float64 // meters per grid cell, from the DEM header

	// CellSizeOverFinesse is the altitude cost, in meters, per cell of
	// horizontal travel: CellSizeM / Finesse.
	CellSizeOverFinesse float64

	// Header fields retained verbatim for output reprojection.
	GlobalNRows, GlobalNCols int
	XllCorner, YllCorner     float64

	ExportPasses bool

	// PassWeightThreshold is the minimum weight (exclusive) required for a
	// mountain pass to be written to the CSV output. Defaults to
	// DefaultPassWeightThreshold.
	PassWeightThreshold uint64
}

// NewParams validates the raw CLI-derived scalars and builds an immutable
// Params. Finesse must be positive or CellSizeOverFinesse divides by zero.
func NewParams(homeX, homeY float64, finesse, distSol, securite, nodataAltitude int, cellSizeM float64, globalNRows, globalNCols int, xll, yll float64, exportPasses bool) (Params, error) {
	if finesse <= 0 {
		return Params{}, fmt.Errorf("finesse must be positive, got %d", finesse)
	}
	if cellSizeM <= 0 {
		return Params{}, fmt.Errorf("cellsize must be positive, got %f", cellSizeM)
	}
	if globalNRows <= 0 || globalNCols <= 0 {
		return Params{}, fmt.Errorf("DEM dimensions must be positive, got %d x %d", globalNRows, globalNCols)
	}

	return Params{
		HomeX:               homeX,
		HomeY:               homeY,
		Finesse:             finesse,
		DistSol:             distSol,
		Securite:            securite,
		NodataAltitude:      nodataAltitude,
		CellSizeM:           cellSizeM,
		CellSizeOverFinesse: cellSizeM / float64(finesse),
		GlobalNRows:         globalNRows,
		GlobalNCols:         globalNCols,
		XllCorner:           xll,
		YllCorner:           yll,
		ExportPasses:        exportPasses,
		PassWeightThreshold: DefaultPassWeightThreshold,
	}, nil
}

// WindowRadius returns the radius, in cells, of the square subregion window
// around the home cell: nodata_altitude / (cellsize / finesse).
func (p Params) WindowRadius() int {
	if p.CellSizeOverFinesse <= 0 {
		return 0
	}
	return int(math.Floor(float64(p.NodataAltitude) / p.CellSizeOverFinesse))
}
