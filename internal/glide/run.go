package glide

import (
	"fmt"

	"github.com/banshee-data/glidepath/internal/monitoring"
)

// RunOutputs names the three files a Run produces. PassesPath is only
// written when params.ExportPasses is true.
type RunOutputs struct {
	OutputSubPath string
	LocalPath     string
	PassesPath    string
}

// Run sequences the whole pipeline against an already-loaded DEM: load the
// home subregion, propagate, write the two altitude grids, and — if
// requested — detect and weight mountain passes and write the CSV. This
// orchestration is intentionally thin; all interesting behaviour lives in
// the functions it calls. Callers read the topology file once (typically
// to derive Params's header fields before construction) and pass the
// resulting DEM in, rather than Run re-reading it. Every log line Run emits
// carries whatever run ID the caller most recently set with
// monitoring.SetRunID, so callers running several tiles in one process get
// a consistent correlation tag per invocation without threading it through
// this signature.
func Run(dem *DEM, params Params, out RunOutputs) (Summary, error) {
	WarnOnNodataMismatch(dem.AscHeader, params.NodataAltitude)

	monitoring.Tagf("loading subregion (radius=%d cells)", params.WindowRadius())
	grid, err := LoadSubregion(dem, params)
	if err != nil {
		return Summary{}, fmt.Errorf("loading subregion: %w", err)
	}
	monitoring.Tagf("subregion is %dx%d, home at local (%d,%d)", grid.NRows, grid.NCols, grid.HomeI, grid.HomeJ)
	WarnOnTrivialRun(params.NodataAltitude, grid.Home().Altitude)

	engine := NewEngine(params)
	monitoring.Tagf("propagating safe altitudes")
	engine.Propagate(grid)

	// output_sub.asc: ground cells rendered as 0.
	grid.UpdateAltitudeForGroundCells(0)
	if err := WriteAscGridFile(out.OutputSubPath, grid, params, false); err != nil {
		return Summary{}, fmt.Errorf("writing %s: %w", out.OutputSubPath, err)
	}

	// local.asc: identical, except cells at altitude 0 (ground) render as nodata.
	if err := WriteAscGridFile(out.LocalPath, grid, params, true); err != nil {
		return Summary{}, fmt.Errorf("writing %s: %w", out.LocalPath, err)
	}

	if params.ExportPasses {
		monitoring.Tagf("detecting mountain passes")
		DetectPasses(grid)
		if err := WeightPasses(grid); err != nil {
			return Summary{}, fmt.Errorf("weighting passes: %w", err)
		}
		if err := WritePassesFile(out.PassesPath, grid, params); err != nil {
			return Summary{}, fmt.Errorf("writing %s: %w", out.PassesPath, err)
		}
	}

	summary := Summarize(grid, params)
	monitoring.Tagf("%d/%d cells reachable, %d ground, %d unreachable, %d passes",
		summary.ReachableCells, summary.TotalCells, summary.GroundCells, summary.UnreachableCells, summary.PassCount)

	monitoring.Tagf("done")
	return summary, nil
}
