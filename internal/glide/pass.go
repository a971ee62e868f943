package glide

// maxWeightChainDepth bounds the origin-chain walk in WeightPasses. Failing
// loudly rather than looping forever once this is exceeded signals that an
// origin chain cycled without reaching a ground cell, which should never
// happen.
const maxWeightChainDepth = 1000

// DetectPasses marks MountainPass on every cell whose immediate origin is a
// ground cell while the cell itself is not: geometrically, the last point
// where a glide clears a ridge.
func DetectPasses(grid *Grid) {
	for idx := range grid.Cells {
		c := &grid.Cells[idx]
		if !c.HasOrigin {
			continue
		}
		origin := grid.at(c.Oi, c.Oj)
		c.MountainPass = origin.Ground && !c.Ground
	}
}

// WeightPasses resets every cell's Weight to zero, then for every cell
// walks its origin chain, incrementing Weight on each visited ancestor,
// stopping at a ground cell or a self-loop. The walk is iterative with an
// explicit visited guard, so a cycle is detected deterministically and
// returned as an error rather than overflowing the stack.
func WeightPasses(grid *Grid) error {
	for idx := range grid.Cells {
		grid.Cells[idx].Weight = 0
	}
	for idx := range grid.Cells {
		if err := walkOriginChain(grid, grid.Cells[idx]); err != nil {
			return err
		}
	}
	return nil
}

func walkOriginChain(grid *Grid, c Cell) error {
	if !c.HasOrigin {
		return nil
	}

	curI, curJ := c.Oi, c.Oj
	visited := make(map[[2]int]bool, maxWeightChainDepth)

	for depth := 0; depth < maxWeightChainDepth; depth++ {
		key := [2]int{curI, curJ}
		if visited[key] {
			return &InvariantError{I: curI, J: curJ, Depth: depth, Msg: "origin chain revisited a cell without reaching ground or a self-loop"}
		}
		visited[key] = true

		cur := grid.at(curI, curJ)
		cur.Weight++
		grid.set(curI, curJ, cur)

		if cur.Ground {
			return nil
		}

		nextI, nextJ := cur.Oi, cur.Oj
		if nextI == curI && nextJ == curJ {
			return nil
		}
		curI, curJ = nextI, nextJ
	}

	return &InvariantError{I: curI, J: curJ, Depth: maxWeightChainDepth, Msg: "origin chain exceeded the maximum allowed depth"}
}

// QualifyingPasses returns every cell that should be emitted as a mountain
// pass: MountainPass is set, Weight exceeds threshold, and the cell's
// grand-origin (the origin of its origin) is itself a ground cell. The
// weight threshold and grand-origin filter exist to suppress noisy,
// low-traffic pass candidates from the CSV output.
func QualifyingPasses(grid *Grid, threshold uint64) []Cell {
	var out []Cell
	for _, c := range grid.Cells {
		if !c.MountainPass || c.Weight <= threshold {
			continue
		}
		origin := grid.at(c.Oi, c.Oj)
		if !origin.HasOrigin {
			continue
		}
		grandOrigin := grid.at(origin.Oi, origin.Oj)
		if grandOrigin.Ground {
			out = append(out, c)
		}
	}
	return out
}
