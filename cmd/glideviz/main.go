// Command glideviz renders an altitude field produced by glidepath as a PNG
// heat map, optionally overlaying the mountain passes listed in a CSV file
// written alongside it.
//
// Usage:
//
//	glideviz altitude.asc output.png [mountain_passes.csv]
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/banshee-data/glidepath/internal/glide"
	"github.com/banshee-data/glidepath/internal/visualize"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.New(os.Stderr, "", 0).Printf("glideviz: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("usage: glideviz altitude.asc output.png [mountain_passes.csv]")
	}
	ascPath, pngPath := args[0], args[1]

	dem, err := glide.ReadAscGridFile(ascPath)
	if err != nil {
		return err
	}
	grid := gridFromDEM(dem)

	var markers []visualize.PassMarker
	if len(args) == 3 {
		markers, err = readPassMarkers(args[2], grid, dem)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[2], err)
		}
	}

	return visualize.RenderAltitudeField(pngPath, grid, ascPath, markers)
}

// gridFromDEM wraps a standalone DEM (as produced by glidepath's output
// files) in a glide.Grid so it can be fed to the heat-map renderer, which
// only needs the Altitude field.
func gridFromDEM(dem *glide.DEM) *glide.Grid {
	grid := glide.NewGrid(dem.NRows, dem.NCols)
	for i := 0; i < dem.NRows; i++ {
		for j := 0; j < dem.NCols; j++ {
			grid.SetAltitude(i, j, dem.At(i, j))
		}
	}
	return grid
}

// readPassMarkers parses a mountain_passes.csv file (name,x,y,weight) back
// into local grid coordinates using the same reprojection glidepath used to
// write them, inverted.
func readPassMarkers(path string, grid *glide.Grid, dem *glide.DEM) ([]visualize.PassMarker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var markers []visualize.PassMarker
	for _, row := range rows[1:] { // skip header
		if len(row) != 4 {
			continue
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing x: %w", err)
		}
		y, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing y: %w", err)
		}
		weight, err := strconv.ParseUint(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing weight: %w", err)
		}

		j := int((x - dem.XllCorner) / dem.CellSize)
		i := dem.NRows - 1 - int((y-dem.YllCorner)/dem.CellSize)
		if i < 0 || i >= grid.NRows || j < 0 || j >= grid.NCols {
			continue
		}
		markers = append(markers, visualize.PassMarker{I: i, J: j, Weight: weight})
	}
	return markers, nil
}
