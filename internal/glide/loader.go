package glide

import (
	"fmt"
	"math"
)

// LoadSubregion selects the square window of radius p.WindowRadius() cells
// centred on the home point, clips it to dem's bounds, and materialises it
// as a Grid with Elevation populated and Altitude initialised to
// NodataAltitude. The home cell is initialised against the raw elevation
// first, then clearance (DistSol) is added once to every cell, before
// LoadSubregion returns.
func LoadSubregion(dem *DEM, p Params) (*Grid, error) {
	homeGlobalJ := int(math.Floor((p.HomeX - p.XllCorner) / p.CellSizeM))
	homeGlobalI := dem.NRows - 1 - int(math.Floor((p.HomeY-p.YllCorner)/p.CellSizeM))

	if homeGlobalI < 0 || homeGlobalI >= dem.NRows || homeGlobalJ < 0 || homeGlobalJ >= dem.NCols {
		return nil, fmt.Errorf("home point (%g,%g) falls outside the %dx%d DEM", p.HomeX, p.HomeY, dem.NRows, dem.NCols)
	}

	radius := p.WindowRadius()

	startI := clampInt(homeGlobalI-radius, 0, dem.NRows-1)
	endI := clampInt(homeGlobalI+radius, 0, dem.NRows-1)
	startJ := clampInt(homeGlobalJ-radius, 0, dem.NCols-1)
	endJ := clampInt(homeGlobalJ+radius, 0, dem.NCols-1)

	nrows := endI - startI + 1
	ncols := endJ - startJ + 1

	grid := NewGrid(nrows, ncols)
	grid.StartI, grid.EndI = startI, endI
	grid.StartJ, grid.EndJ = startJ, endJ

	for i := 0; i < nrows; i++ {
		for j := 0; j < ncols; j++ {
			c := grid.At(i, j)
			c.Elevation = dem.At(startI+i, startJ+j)
			c.Altitude = float64(p.NodataAltitude)
			grid.set(i, j, c)
		}
	}

	homeLocalI := homeGlobalI - startI
	homeLocalJ := homeGlobalJ - startJ
	if err := grid.InitHome(homeLocalI, homeLocalJ, p.Securite); err != nil {
		return nil, err
	}

	grid.AddClearance(p.DistSol)

	return grid, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
