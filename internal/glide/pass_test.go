package glide

import "testing"

// buildChain constructs a 1xn grid of cells whose origins form a strict
// linear chain: cell 0 is ground and self-originated, cell i (i>=1) has
// cell i-1 as its origin and is not ground.
func buildChain(n int) *Grid {
	g := NewGrid(1, n)
	c0 := g.At(0, 0)
	c0.Ground = true
	c0.HasOrigin = true
	c0.Oi, c0.Oj = 0, 0
	g.set(0, 0, c0)

	for j := 1; j < n; j++ {
		c := g.At(0, j)
		c.HasOrigin = true
		c.Oi, c.Oj = 0, j-1
		g.set(0, j, c)
	}
	return g
}

func TestDetectPassesMarksOnlyGroundToNonGroundStep(t *testing.T) {
	g := buildChain(3) // A(ground) <- B <- C

	DetectPasses(g)

	if g.At(0, 0).MountainPass {
		t.Error("a ground cell's own step should never be a mountain pass")
	}
	if !g.At(0, 1).MountainPass {
		t.Error("B's origin is ground and B itself is not: expected a mountain pass")
	}
	if g.At(0, 2).MountainPass {
		t.Error("C's origin (B) is not ground: expected no mountain pass")
	}
}

func TestWeightPassesAccumulatesAlongChain(t *testing.T) {
	g := buildChain(3) // A(ground) <- B <- C

	if err := WeightPasses(g); err != nil {
		t.Fatalf("WeightPasses: %v", err)
	}

	if w := g.At(0, 0).Weight; w != 3 {
		t.Errorf("A.Weight = %d, want 3 (self + B + C)", w)
	}
	if w := g.At(0, 1).Weight; w != 1 {
		t.Errorf("B.Weight = %d, want 1 (C only)", w)
	}
	if w := g.At(0, 2).Weight; w != 0 {
		t.Errorf("C.Weight = %d, want 0 (no descendants)", w)
	}
}

func TestQualifyingPassesFiltersByWeightAndGrandOrigin(t *testing.T) {
	g := buildChain(3)
	DetectPasses(g)
	if err := WeightPasses(g); err != nil {
		t.Fatalf("WeightPasses: %v", err)
	}

	qualifying := QualifyingPasses(g, 0)
	if len(qualifying) != 1 || qualifying[0].I != 0 || qualifying[0].J != 1 {
		t.Fatalf("expected exactly B to qualify at threshold 0, got %+v", qualifying)
	}

	if got := QualifyingPasses(g, 1); len(got) != 0 {
		t.Errorf("expected nothing to qualify once threshold reaches B's own weight, got %+v", got)
	}
}

func TestWeightPassesDetectsCycle(t *testing.T) {
	g := NewGrid(1, 2)
	d := g.At(0, 0)
	d.HasOrigin = true
	d.Oi, d.Oj = 0, 1
	g.set(0, 0, d)

	e := g.At(0, 1)
	e.HasOrigin = true
	e.Oi, e.Oj = 0, 0
	g.set(0, 1, e)

	err := WeightPasses(g)
	if err == nil {
		t.Fatal("expected an InvariantError for a cycle that never reaches ground")
	}
	if _, ok := err.(*InvariantError); !ok {
		t.Errorf("expected *InvariantError, got %T: %v", err, err)
	}
}

// TestScenarioS3RidgePass builds a grid with a north-south ridge, elevation
// 1000, blocking an entire column except for a single low notch, and runs
// it through the full Propagate -> DetectPasses -> WeightPasses ->
// QualifyingPasses pipeline: the only integration point between the engine
// and the pass/weight subsystem exercised against realistic (not
// hand-built-chain) Ground/HasOrigin state.
//
// Home sits west of the ridge on the notch's row. The ridge is tall enough
// to span every row of the grid, so every cell east of it can only be
// reached by a path that funnels through the notch: every ridge cell
// (elevation 1000) sinks to Ground almost immediately, since the altitude
// a glide from home actually needs there is far below 1000, while the
// notch (elevation 200) sinks to Ground for the same reason but at a much
// lower altitude, making it the sole opening. A wide east region is used
// so that, once every east cell's origin chain is walked back to its first
// Ground ancestor, the notch accumulates a weight comfortably past 100 -
// the spec's own illustrative threshold for this scenario does not survive
// literally at the spec's tiny 7x7 dimensions, so the topology is kept but
// the east region is scaled up to actually produce that weight.
func TestScenarioS3RidgePass(t *testing.T) {
	const (
		nrows     = 15
		ridgeCol  = 5
		notchRow  = 7
		eastCols  = 14 // columns ridgeCol+1 .. ncols-1
		ncols     = ridgeCol + 1 + eastCols
		finesse   = 20
		securite  = 50
		nodata    = 100000 // generous: nothing in this grid should hit the horizon
		cellsize  = 10.0
	)

	p, err := NewParams(0, 0, finesse, 0, securite, nodata, cellsize, nrows, ncols, 0, 0, true)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}

	g := NewGrid(nrows, ncols)
	for idx := range g.Cells {
		g.Cells[idx].Altitude = float64(p.NodataAltitude)
	}
	for i := 0; i < nrows; i++ {
		c := g.At(i, ridgeCol)
		c.Elevation = 1000
		g.set(i, ridgeCol, c)
	}
	notch := g.At(notchRow, ridgeCol)
	notch.Elevation = 200
	g.set(notchRow, ridgeCol, notch)

	if err := g.InitHome(notchRow, 0, p.Securite); err != nil {
		t.Fatalf("InitHome: %v", err)
	}

	NewEngine(p).Propagate(g)

	notchAfter := g.At(notchRow, ridgeCol)
	if !notchAfter.Ground {
		t.Fatalf("expected the notch to become ground (its elevation is far below any reachable required altitude), got %+v", notchAfter)
	}

	gateway := g.At(notchRow, ridgeCol+1)
	if gateway.Ground {
		t.Fatalf("expected the cell immediately east of the notch to remain non-ground, got %+v", gateway)
	}
	if !gateway.HasOrigin || gateway.Oi != notchRow || gateway.Oj != ridgeCol {
		t.Errorf("expected the gateway cell to adopt the notch directly as its origin, got origin (%d,%d) hasOrigin=%v", gateway.Oi, gateway.Oj, gateway.HasOrigin)
	}

	DetectPasses(g)
	if !g.At(notchRow, ridgeCol+1).MountainPass {
		t.Error("expected the cell immediately east of the notch to be marked a mountain pass")
	}

	if err := WeightPasses(g); err != nil {
		t.Fatalf("WeightPasses: %v", err)
	}
	notchWeight := g.At(notchRow, ridgeCol).Weight
	if notchWeight <= 100 {
		t.Errorf("notch weight = %d, want > 100 (every reachable east-of-ridge cell funnels through it)", notchWeight)
	}

	// The gateway cell's own weight only counts cells that relay through it
	// rather than seeing the notch directly, so check against a permissive
	// threshold rather than DefaultPassWeightThreshold here; notchWeight
	// above already covers the spec's ">100" claim.
	qualifying := QualifyingPasses(g, 0)
	if len(qualifying) == 0 {
		t.Error("expected at least one qualifying pass east of the notch")
	}
	for _, c := range qualifying {
		if c.J <= ridgeCol {
			t.Errorf("qualifying pass at (%d,%d) should be east of the ridge", c.I, c.J)
		}
	}
}

func TestWeightPassesDepthCapExceeded(t *testing.T) {
	g := buildChain(1002) // chain longer than maxWeightChainDepth ancestors deep

	err := WeightPasses(g)
	if err == nil {
		t.Fatal("expected an InvariantError once the chain exceeds the depth cap")
	}
	ierr, ok := err.(*InvariantError)
	if !ok {
		t.Fatalf("expected *InvariantError, got %T: %v", err, err)
	}
	if ierr.Depth != maxWeightChainDepth {
		t.Errorf("Depth = %d, want %d", ierr.Depth, maxWeightChainDepth)
	}
}
