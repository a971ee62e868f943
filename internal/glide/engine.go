package glide

// workItem is a single entry in the propagation worklist: "reconsider cell
// (I,J) because its parent (Pi,Pj) was just updated".
type workItem struct {
	I, J   int
	Pi, Pj int
}

// Engine runs the single-threaded, synchronous worklist propagation that
// assigns a safe altitude and origin to every reachable cell. It owns no
// state beyond the params it was built with, and Propagate mutates only the
// grid passed to it; it is safe to reuse across runs as long as each run
// gets its own Grid.
type Engine struct {
	Params Params
}

// NewEngine returns an Engine configured with the given immutable params.
func NewEngine(p Params) *Engine {
	return &Engine{Params: p}
}

// Propagate seeds the worklist from the home cell's four-connected
// neighbours and drains it to a fixed point, mutating grid's Altitude, Oi,
// Oj and Ground fields monotonically. It is a label-correcting
// propagation, not a strict BFS: a cell may be revisited many times as
// better origins arrive.
func (e *Engine) Propagate(grid *Grid) {
	queue := make([]workItem, 0, 4*grid.NRows*grid.NCols)

	home := grid.Home()
	for _, n := range grid.FourNeighbours(home.I, home.J) {
		queue = append(queue, workItem{I: n.i, J: n.j, Pi: home.I, Pj: home.J})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		c := grid.at(item.I, item.J)
		p := grid.at(item.Pi, item.Pj)

		if p.Oi == c.Oi && p.Oj == c.Oj && p.HasOrigin == c.HasOrigin {
			continue
		}
		if c.Ground {
			continue
		}

		var candI, candJ int
		if grid.isInView(c.I, c.J, p.Oi, p.Oj) {
			candI, candJ = p.Oi, p.Oj
		} else {
			candI, candJ = p.I, p.J
		}

		if c.HasOrigin && candI == c.Oi && candJ == c.Oj {
			continue
		}

		improved := tryAdoptOrigin(&c, grid, candI, candJ, e.Params.CellSizeOverFinesse, float64(e.Params.NodataAltitude))
		grid.set(c.I, c.J, c)

		if !improved {
			continue
		}

		for _, n := range grid.FourNeighbours(c.I, c.J) {
			nb := grid.at(n.i, n.j)
			if nb.Oi == c.Oi && nb.Oj == c.Oj && nb.HasOrigin == c.HasOrigin {
				continue
			}
			queue = append(queue, workItem{I: n.i, J: n.j, Pi: c.I, Pj: c.J})
		}
	}
}
