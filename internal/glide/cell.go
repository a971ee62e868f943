package glide

import "math"

// Cell is a single element of the subregion grid. Rather than overloading
// oi==0/oj==0 to mean "never assigned an origin" (which collides with the
// legitimate case of a home cell sitting at the grid's (0,0) corner), an
// explicit HasOrigin flag is carried alongside Oi, Oj.
type Cell struct {
	Elevation float64 // terrain elevation + DistSol, applied once up front
	Altitude  float64 // currently-best safe altitude; starts at NodataAltitude

	Oi, Oj    int  // origin cell this cell's altitude derives from
	HasOrigin bool // false until try-adopt-origin first succeeds

	I, J int // this cell's own position

	Ground bool // true iff the glide ray collapsed to the terrain here

	Weight uint64 // number of descendant cells whose origin-chain passes here

	MountainPass bool
}

// requiredAltitudeFrom returns the altitude a glider starting from origin
// at origin.Altitude, losing cellSizeOverFinesse per cell of horizontal
// travel, must arrive at in order to reach this offset. di, dj are the
// signed offsets target-origin along each axis.
func requiredAltitudeFrom(origin Cell, di, dj int, cellSizeOverFinesse float64) float64 {
	dist := math.Hypot(float64(di), float64(dj))
	return origin.Altitude + dist*cellSizeOverFinesse
}

// tryAdoptOrigin updates target in place with a candidate origin located at
// (oi, oj) in grid, following five rules:
//
//  1. compute the required altitude from the candidate origin;
//  2. if target already has an origin and the candidate is no better,
//     reject;
//  3. if the candidate altitude sinks to the target's own elevation, the
//     target becomes a ground cell, self-originated;
//  4. otherwise adopt the candidate's altitude and position as the new
//     origin, leaving Ground unchanged;
//  5. if the candidate's required altitude is at or beyond the reachable horizon,
//     report no improvement so children are not scheduled, even though the
//     target's fields were updated.
//
// Returns true iff the target should propagate the update to its
// neighbours.
func tryAdoptOrigin(target *Cell, grid *Grid, oi, oj int, cellSizeOverFinesse float64, nodataAltitude float64) bool {
	origin := grid.at(oi, oj)
	di := target.I - oi
	dj := target.J - oj
	req := requiredAltitudeFrom(origin, di, dj, cellSizeOverFinesse)

	if target.HasOrigin && req >= target.Altitude {
		return false
	}

	if req <= target.Elevation {
		target.Altitude = target.Elevation
		target.Oi, target.Oj = target.I, target.J
		target.HasOrigin = true
		target.Ground = true
	} else {
		target.Altitude = req
		target.Oi, target.Oj = oi, oj
		target.HasOrigin = true
	}

	if req >= nodataAltitude {
		return false
	}
	return true
}

// isInView reports whether a straight glide between local cells a and b is
// unobstructed: no cell along a modified Bresenham raster from a to b has
// Ground == true. It is a cellPos-based wrapper around Grid.isInView, which
// holds the full corner-grazing rule.
func isInView(a, b cellPos, grid *Grid) bool {
	return grid.isInView(a.i, a.j, b.i, b.j)
}

type cellPos struct{ i, j int }
