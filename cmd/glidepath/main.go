// Command glidepath computes the minimum safe overflight altitude, from a
// designated home cell, for every cell of a subregion of a digital
// elevation model, then optionally detects and weights mountain passes.
//
// Usage:
//
//	glidepath home_x home_y finesse dist_sol securite nodata_altitude \
//	    output_path topology_path export_passes
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/glidepath/internal/glide"
	"github.com/banshee-data/glidepath/internal/monitoring"
)

const numPositionalArgs = 9

func main() {
	quiet := flag.Bool("quiet", false, "suppress progress logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-quiet] home_x home_y finesse dist_sol securite nodata_altitude output_path topology_path export_passes\n", filepath.Base(os.Args[0]))
	}
	flag.Parse()

	if *quiet {
		monitoring.SetLogger(nil)
	}

	if err := run(flag.Args()); err != nil {
		log.New(os.Stderr, "", 0).Printf("glidepath: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != numPositionalArgs {
		return fmt.Errorf("expected %d positional arguments, got %d", numPositionalArgs, len(args))
	}

	homeX, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("home_x: %w", err)
	}
	homeY, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("home_y: %w", err)
	}
	finesse, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("finesse: %w", err)
	}
	distSol, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("dist_sol: %w", err)
	}
	securite, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("securite: %w", err)
	}
	nodataAltitude, err := strconv.Atoi(args[5])
	if err != nil {
		return fmt.Errorf("nodata_altitude: %w", err)
	}
	outputPath := args[6]
	topologyPath := args[7]
	exportPasses, err := parseBool(args[8])
	if err != nil {
		return fmt.Errorf("export_passes: %w", err)
	}

	dem, err := glide.ReadAscGridFile(topologyPath)
	if err != nil {
		return err
	}

	params, err := glide.NewParams(homeX, homeY, finesse, distSol, securite, nodataAltitude,
		dem.CellSize, dem.NRows, dem.NCols, dem.XllCorner, dem.YllCorner, exportPasses)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	runID := monitoring.NewRunID()
	monitoring.SetRunID(runID)

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputPath, err)
	}

	outputs := glide.RunOutputs{
		OutputSubPath: filepath.Join(outputPath, "output_sub.asc"),
		LocalPath:     filepath.Join(outputPath, "local.asc"),
		PassesPath:    filepath.Join(outputPath, "mountain_passes.csv"),
	}

	summary, err := glide.Run(dem, params, outputs)
	if err != nil {
		return err
	}

	monitoring.Tagf("mean altitude %.1fm (stddev %.1fm) over %d reachable cells", summary.MeanAltitude, summary.StddevAltitude, summary.ReachableCells)
	return nil
}

// parseBool accepts the case-insensitive true|false|0|1 vocabulary
// specified for export_passes, rather than strconv.ParseBool's broader
// (and therefore looser) set of accepted spellings.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected true|false|0|1, got %q", s)
	}
}
