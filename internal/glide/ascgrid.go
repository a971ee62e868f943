package glide

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/glidepath/internal/monitoring"
)

// AscHeader holds the six ESRI ASCII grid header fields. NodataValue is
// parsed but deliberately never substituted for the CLI-supplied nodata
// altitude anywhere in the pipeline — only used to warn on mismatch.
type AscHeader struct {
	NCols, NRows         int
	XllCorner, YllCorner float64
	CellSize             float64
	NodataValue          float64
	HasNodataValue       bool
}

// DEM is a fully materialised ESRI ASCII grid: header plus row-major
// elevation data, row 0 northernmost.
type DEM struct {
	AscHeader
	Elevation []float64 // row-major, length NRows*NCols
}

// At returns the elevation at global row i, column j.
func (d *DEM) At(i, j int) float64 {
	return d.Elevation[i*d.NCols+j]
}

// ReadAscGrid parses an ESRI ASCII grid from r. It tolerates the
// NODATA_value header line being present or absent, reads all six expected
// header keys case-insensitively, then reads NRows rows of NCols
// whitespace-separated elevations.
func ReadAscGrid(r io.Reader) (*DEM, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	h := AscHeader{}
	seen := map[string]bool{}
	pending := "" // first data row, when the header has no NODATA_value line

	for len(seen) < 6 {
		if !scanner.Scan() {
			return nil, fmt.Errorf("truncated ASCII grid header: expected 6 header lines, got %d", len(seen))
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(seen) == 5 && !seen["nodata_value"] {
			if _, err := strconv.ParseFloat(fields[0], 64); err == nil {
				pending = line
				break
			}
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed header line %q: expected 'key value'", line)
		}
		key := strings.ToLower(fields[0])
		val := fields[1]

		var err error
		switch key {
		case "ncols":
			h.NCols, err = strconv.Atoi(val)
		case "nrows":
			h.NRows, err = strconv.Atoi(val)
		case "xllcorner":
			h.XllCorner, err = strconv.ParseFloat(val, 64)
		case "yllcorner":
			h.YllCorner, err = strconv.ParseFloat(val, 64)
		case "cellsize":
			h.CellSize, err = strconv.ParseFloat(val, 64)
		case "nodata_value":
			h.NodataValue, err = strconv.ParseFloat(val, 64)
			h.HasNodataValue = true
		default:
			return nil, fmt.Errorf("unrecognised header key %q", fields[0])
		}
		if err != nil {
			return nil, fmt.Errorf("header key %q: %w", fields[0], err)
		}
		seen[key] = true
	}
	if h.NCols <= 0 || h.NRows <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", h.NRows, h.NCols)
	}

	elev := make([]float64, h.NRows*h.NCols)
	row := 0
	for row < h.NRows {
		line := pending
		pending = ""
		if line == "" {
			if !scanner.Scan() {
				return nil, fmt.Errorf("truncated ASCII grid: expected %d data rows, got %d", h.NRows, row)
			}
			line = strings.TrimSpace(scanner.Text())
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != h.NCols {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row, h.NCols, len(fields))
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, j, err)
			}
			elev[row*h.NCols+j] = v
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII grid: %w", err)
	}

	return &DEM{AscHeader: h, Elevation: elev}, nil
}

// ReadAscGridFile opens path and parses it as an ESRI ASCII grid.
func ReadAscGridFile(path string) (*DEM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening topology file: %w", err)
	}
	defer f.Close()
	dem, err := ReadAscGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dem, nil
}

// WarnOnNodataMismatch logs a warning if the DEM header's NODATA_value
// disagrees with the CLI-supplied nodata altitude by more than a trivial
// epsilon. The header value is never substituted for the CLI value; this
// only surfaces the disagreement instead of staying silent about it.
func WarnOnNodataMismatch(h AscHeader, cliNodataAltitude int) {
	if !h.HasNodataValue {
		return
	}
	const epsilon = 1e-6
	diff := h.NodataValue - float64(cliNodataAltitude)
	if diff < -epsilon || diff > epsilon {
		monitoring.Tagf("warning: DEM header NODATA_value=%g disagrees with CLI nodata_altitude=%d; the CLI value is authoritative", h.NodataValue, cliNodataAltitude)
	}
}

// WarnOnTrivialRun logs a warning if nodataAltitude does not exceed the
// home cell's departure altitude (elevation plus securite). When it
// doesn't, the propagation horizon sits at or below the altitude the glide
// starts from, so every neighbour's required altitude immediately meets or
// exceeds the horizon and the run terminates with only the home cell
// populated. This is a valid configuration, not an error, so it is
// surfaced rather than rejected by NewParams.
func WarnOnTrivialRun(nodataAltitude int, homeAltitude float64) {
	if float64(nodataAltitude) <= homeAltitude {
		monitoring.Tagf("warning: nodata_altitude=%d does not exceed home altitude %.1fm; this run will be trivially empty", nodataAltitude, homeAltitude)
	}
}

// WriteAscGrid writes grid's Altitude field as an ESRI ASCII grid to w.
// Header fields are reprojected to the subregion window: xllcorner/
// yllcorner are shifted to the window's lower-left corner in global
// coordinates. Every cell's Altitude is written as it stands (Run sets
// ground cells to 0 beforehand with UpdateAltitudeForGroundCells), so cells
// still at nodataAltitude are written verbatim; asNodataIfZero additionally rewrites
// any cell whose Altitude is exactly 0 to nodataAltitude, producing
// local.asc's "ground is transparent" rendering.
func WriteAscGrid(w io.Writer, grid *Grid, p Params, asNodataIfZero bool) error {
	bw := bufio.NewWriter(w)

	xll := p.XllCorner + float64(grid.StartJ)*p.CellSizeM
	yll := p.YllCorner + float64(p.GlobalNRows-1-grid.EndI)*p.CellSizeM

	headers := []struct {
		key string
		val string
	}{
		{"ncols", strconv.Itoa(grid.NCols)},
		{"nrows", strconv.Itoa(grid.NRows)},
		{"xllcorner", strconv.FormatFloat(xll, 'f', 3, 64)},
		{"yllcorner", strconv.FormatFloat(yll, 'f', 3, 64)},
		{"cellsize", strconv.FormatFloat(p.CellSizeM, 'f', 3, 64)},
		{"NODATA_value", strconv.Itoa(p.NodataAltitude)},
	}
	for _, h := range headers {
		if _, err := fmt.Fprintf(bw, "%s %s\n", h.key, h.val); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i := 0; i < grid.NRows; i++ {
		for j := 0; j < grid.NCols; j++ {
			if j > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					return err
				}
			}
			c := grid.At(i, j)
			v := c.Altitude
			if asNodataIfZero && v == 0 {
				v = float64(p.NodataAltitude)
			}
			if _, err := fmt.Fprintf(bw, "%g", v); err != nil {
				return fmt.Errorf("writing cell (%d,%d): %w", i, j, err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteAscGridFile creates (or truncates) path and writes grid to it.
func WriteAscGridFile(path string, grid *Grid, p Params, asNodataIfZero bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteAscGrid(f, grid, p, asNodataIfZero); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
