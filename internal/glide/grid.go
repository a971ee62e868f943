package glide

import "fmt"

// Grid is a dense, row-major nrows x ncols array of Cells, exclusively
// owned by a single engine run. Row 0 is the northernmost row, matching
// standard ESRI ASCII grid orientation.
type Grid struct {
	NRows, NCols int
	Cells        []Cell // row-major, length NRows*NCols

	// Subregion window, in global DEM coordinates.
	StartI, EndI int
	StartJ, EndJ int

	// Home cell, in local (grid) coordinates.
	HomeI, HomeJ int
}

// NewGrid allocates an nrows x ncols grid with every cell's I, J fields set
// to its own position. Elevation and Altitude are left zero; callers
// (typically the subregion loader) populate them before use.
func NewGrid(nrows, ncols int) *Grid {
	g := &Grid{
		NRows: nrows,
		NCols: ncols,
		Cells: make([]Cell, nrows*ncols),
	}
	for i := 0; i < nrows; i++ {
		for j := 0; j < ncols; j++ {
			c := g.at(i, j)
			c.I, c.J = i, j
			g.set(i, j, c)
		}
	}
	return g
}

func (g *Grid) index(i, j int) int { return i*g.NCols + j }

func (g *Grid) inBounds(i, j int) bool {
	return i >= 0 && i < g.NRows && j >= 0 && j < g.NCols
}

// At returns a copy of the cell at (i, j). Panics if out of bounds, same as
// direct slice indexing would.
func (g *Grid) At(i, j int) Cell { return g.at(i, j) }

// SetAltitude overwrites the Altitude field of the cell at (i, j), for
// callers outside the package (such as the visualiser) that build a Grid
// directly from a standalone altitude file rather than through LoadSubregion.
func (g *Grid) SetAltitude(i, j int, v float64) {
	c := g.at(i, j)
	c.Altitude = v
	g.set(i, j, c)
}

func (g *Grid) at(i, j int) Cell { return g.Cells[g.index(i, j)] }

func (g *Grid) set(i, j int, c Cell) { g.Cells[g.index(i, j)] = c }

// Home returns a copy of the home cell.
func (g *Grid) Home() Cell { return g.at(g.HomeI, g.HomeJ) }

// InitHome initialises the home cell: it is self-originated, at elevation
// + securite, never re-adopted afterward because it already carries
// HasOrigin.
func (g *Grid) InitHome(homeI, homeJ int, securite int) error {
	if !g.inBounds(homeI, homeJ) {
		return fmt.Errorf("home cell (%d,%d) is outside the %dx%d subregion", homeI, homeJ, g.NRows, g.NCols)
	}
	g.HomeI, g.HomeJ = homeI, homeJ
	home := g.at(homeI, homeJ)
	home.Altitude = home.Elevation + float64(securite)
	home.Oi, home.Oj = homeI, homeJ
	home.HasOrigin = true
	g.set(homeI, homeJ, home)
	return nil
}

// AddClearance adds dist_sol to every cell's elevation exactly once. Called
// after InitHome, so the home cell's departure altitude is computed against
// raw elevation and only the rest of the pipeline (propagation onward) sees
// elevation inflated by ground clearance.
func (g *Grid) AddClearance(distSol int) {
	for idx := range g.Cells {
		g.Cells[idx].Elevation += float64(distSol)
	}
}

// FourNeighbours returns the in-bounds four-connected neighbours of (i, j).
func (g *Grid) FourNeighbours(i, j int) []cellPos {
	candidates := [4]cellPos{
		{i - 1, j},
		{i + 1, j},
		{i, j - 1},
		{i, j + 1},
	}
	out := make([]cellPos, 0, 4)
	for _, c := range candidates {
		if g.inBounds(c.i, c.j) {
			out = append(out, c)
		}
	}
	return out
}

// isInView implements the modified Bresenham line-of-sight predicate
// between local cells (x1,y1) and (x2,y2): true iff no cell along the ray
// has Ground == true. The corner-grazing rule is reproduced exactly from
// the reference: when the minor axis advances, the cell entered through the
// near or far side of the resulting corner is tested depending on how the
// accumulated error compares to 2*major, with no extra test on exact
// equality.
func (g *Grid) isInView(x1, y1, x2, y2 int) bool {
	if x1 == x2 && y1 == y2 {
		return true
	}
	if abs(x1-x2) <= 1 && abs(y1-y2) <= 1 {
		return true
	}

	xstep := 1
	if x2 < x1 {
		xstep = -1
	}
	ystep := 1
	if y2 < y1 {
		ystep = -1
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	ddx := dx * 2
	ddy := dy * 2

	error := dx
	errorprev := error

	if dx >= dy {
		for n := 0; n < dx; n++ {
			x1 += xstep
			error += ddy
			if error > ddx {
				y1 += ystep
				error -= ddx
				switch {
				case error+errorprev < ddx:
					if g.at(x1, y1-ystep).Ground {
						return false
					}
				case error+errorprev > ddx:
					if g.at(x1-xstep, y1).Ground {
						return false
					}
				}
			}
			if g.at(x1, y1).Ground {
				return false
			}
			errorprev = error
		}
	} else {
		for n := 0; n < dy; n++ {
			y1 += ystep
			error += ddx
			if error > ddy {
				x1 += xstep
				error -= ddy
				switch {
				case error+errorprev < ddy:
					if g.at(x1-xstep, y1).Ground {
						return false
					}
				case error+errorprev > ddy:
					if g.at(x1, y1-ystep).Ground {
						return false
					}
				}
			}
			if g.at(x1, y1).Ground {
				return false
			}
			errorprev = error
		}
	}

	return true
}

// IsInView is the exported form of isInView, for callers outside the
// package (such as the visualiser) that want to sanity-check a sightline
// without re-running the whole engine.
func (g *Grid) IsInView(x1, y1, x2, y2 int) bool {
	return g.isInView(x1, y1, x2, y2)
}

// UpdateAltitudeForGroundCells rewrites Altitude to v for every ground
// cell, purely for output formatting: Run uses this to normalise ground
// representation to 0 before writing output_sub.asc; local.asc is then
// written from the same grid with WriteAscGrid's asNodataIfZero option.
func (g *Grid) UpdateAltitudeForGroundCells(v float64) {
	for idx := range g.Cells {
		if g.Cells[idx].Ground {
			g.Cells[idx].Altitude = v
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
