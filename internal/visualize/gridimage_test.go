package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/glidepath/internal/glide"
)

func TestRenderAltitudeFieldWritesPNG(t *testing.T) {
	grid := glide.NewGrid(4, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			grid.SetAltitude(i, j, float64(i*4+j))
		}
	}

	out := filepath.Join(t.TempDir(), "altitude.png")
	if err := RenderAltitudeField(out, grid, "test field", nil); err != nil {
		t.Fatalf("RenderAltitudeField: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", out, err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PNG file")
	}
}

func TestRenderAltitudeFieldWithPassOverlay(t *testing.T) {
	grid := glide.NewGrid(3, 3)
	out := filepath.Join(t.TempDir(), "altitude_passes.png")

	markers := []PassMarker{{I: 1, J: 1, Weight: 5}}
	if err := RenderAltitudeField(out, grid, "with passes", markers); err != nil {
		t.Fatalf("RenderAltitudeField: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected %s to exist: %v", out, err)
	}
}

func TestPassMarkersFromGrid(t *testing.T) {
	grid := glide.NewGrid(1, 3)
	a := grid.At(0, 0)
	a.Ground = true
	a.HasOrigin = true
	a.Oi, a.Oj = 0, 0
	grid.SetAltitude(0, 0, a.Altitude)
	grid.Cells[0] = a

	b := grid.At(0, 1)
	b.HasOrigin = true
	b.Oi, b.Oj = 0, 0
	b.MountainPass = true
	b.Weight = 10
	grid.Cells[1] = b

	markers := PassMarkersFromGrid(grid, 0)
	if len(markers) != 1 || markers[0].J != 1 {
		t.Fatalf("expected one marker at column 1, got %+v", markers)
	}
}
