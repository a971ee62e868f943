package glide

import "gonum.org/v1/gonum/stat"

// Summary holds the end-of-run diagnostic statistics logged after a
// propagation and pass pass. It never feeds back into any output file.
type Summary struct {
	TotalCells       int
	GroundCells      int
	UnreachableCells int
	ReachableCells   int

	MeanAltitude   float64
	StddevAltitude float64

	PassCount      int
	MeanPassWeight float64
}

// Summarize computes Summary from grid using gonum/stat for the
// mean/stddev reductions, mirroring this codebase's existing use of gonum
// for numeric summaries elsewhere in the pipeline.
func Summarize(grid *Grid, params Params) Summary {
	s := Summary{TotalCells: len(grid.Cells)}

	altitudes := make([]float64, 0, len(grid.Cells))
	var weights []float64

	for _, c := range grid.Cells {
		switch {
		case c.Ground:
			s.GroundCells++
		case c.Altitude >= float64(params.NodataAltitude):
			s.UnreachableCells++
		default:
			s.ReachableCells++
			altitudes = append(altitudes, c.Altitude)
		}
		if c.MountainPass {
			s.PassCount++
			weights = append(weights, float64(c.Weight))
		}
	}

	if len(altitudes) > 0 {
		s.MeanAltitude, s.StddevAltitude = stat.MeanStdDev(altitudes, nil)
	}
	if len(weights) > 0 {
		s.MeanPassWeight = stat.Mean(weights, nil)
	}

	return s
}
