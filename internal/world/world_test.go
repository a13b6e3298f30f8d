package world

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/undercroft/internal/geom"
)

// corridorWorld builds the smallest interesting world: two square sectors
// sharing one portal edge.
func corridorWorld() *World {
	return &World{
		Name: "corridor",
		Sectors: []Sector{
			{
				Floor:     0,
				Ceil:      4,
				Boundary:  []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
				Neighbors: []Neighbor{Solid(), PortalTo(1), Solid(), Solid()},
				WallColor: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
			},
			{
				Floor:     0,
				Ceil:      4,
				Boundary:  []geom.Point{{X: 4, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 4, Y: 4}},
				Neighbors: []Neighbor{Solid(), Solid(), Solid(), PortalTo(0)},
				WallColor: color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
			},
		},
		Spawn: Spawn{Pos: geom.Point{X: 2, Y: 2}, Sector: 0, EyeZ: 1.7},
	}
}

func TestNeighborVariant(t *testing.T) {
	if Solid().IsPortal() {
		t.Error("Expected Solid() to not be a portal")
	}
	if _, ok := Solid().Portal(); ok {
		t.Error("Expected Portal() to report false for a solid edge")
	}

	n := PortalTo(3)
	dst, ok := n.Portal()
	if !ok || dst != 3 {
		t.Errorf("Expected portal to sector 3, got (%d, %v)", dst, ok)
	}
}

func TestValidateAcceptsCorridor(t *testing.T) {
	if err := corridorWorld().Validate(); err != nil {
		t.Fatalf("Expected corridor world to validate, got %v", err)
	}
}

func TestDemoWorldValidates(t *testing.T) {
	w := Demo()
	if err := w.Validate(); err != nil {
		t.Fatalf("Expected demo world to validate, got %v", err)
	}
	if len(w.Sectors) != 5 {
		t.Errorf("Expected 5 demo sectors, got %d", len(w.Sectors))
	}
}

func TestValidateRejectsFewVertices(t *testing.T) {
	w := corridorWorld()
	w.Sectors[0].Boundary = w.Sectors[0].Boundary[:2]
	w.Sectors[0].Neighbors = w.Sectors[0].Neighbors[:2]

	err := w.Validate()
	if !errors.Is(err, ErrInvalidSectorGeometry) {
		t.Errorf("Expected ErrInvalidSectorGeometry, got %v", err)
	}
}

func TestValidateRejectsCounterclockwise(t *testing.T) {
	w := corridorWorld()
	// Reverse the winding of sector 1.
	b := w.Sectors[1].Boundary
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	err := w.Validate()
	if !errors.Is(err, ErrInvalidSectorGeometry) {
		t.Errorf("Expected ErrInvalidSectorGeometry for reversed winding, got %v", err)
	}
}

func TestValidateRejectsConcave(t *testing.T) {
	w := corridorWorld()
	w.Sectors[0].Boundary = []geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 1, Y: 1}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}
	w.Sectors[0].Neighbors = []Neighbor{Solid(), PortalTo(1), Solid(), Solid(), Solid()}

	err := w.Validate()
	if !errors.Is(err, ErrInvalidSectorGeometry) {
		t.Errorf("Expected ErrInvalidSectorGeometry for concave boundary, got %v", err)
	}
}

func TestValidateRejectsFloorAboveCeiling(t *testing.T) {
	w := corridorWorld()
	w.Sectors[0].Floor = 4
	w.Sectors[0].Ceil = 0

	err := w.Validate()
	if !errors.Is(err, ErrInvalidSectorGeometry) {
		t.Errorf("Expected ErrInvalidSectorGeometry for inverted heights, got %v", err)
	}
}

func TestValidateRejectsNeighborCountMismatch(t *testing.T) {
	w := corridorWorld()
	w.Sectors[0].Neighbors = w.Sectors[0].Neighbors[:3]

	err := w.Validate()
	if !errors.Is(err, ErrInvalidSectorGeometry) {
		t.Errorf("Expected ErrInvalidSectorGeometry for neighbor mismatch, got %v", err)
	}
}

func TestValidateRejectsDanglingPortal(t *testing.T) {
	w := corridorWorld()
	w.Sectors[0].Neighbors[1] = PortalTo(7)

	err := w.Validate()
	if !errors.Is(err, ErrDanglingPortal) {
		t.Errorf("Expected ErrDanglingPortal for out-of-range neighbor, got %v", err)
	}

	w = corridorWorld()
	w.Sectors[0].Neighbors[1] = PortalTo(0)
	err = w.Validate()
	if !errors.Is(err, ErrDanglingPortal) {
		t.Errorf("Expected ErrDanglingPortal for self-referential portal, got %v", err)
	}
}

func TestValidateRejectsAsymmetricPortal(t *testing.T) {
	w := corridorWorld()
	w.Sectors[1].Neighbors[3] = Solid()

	err := w.Validate()
	if !errors.Is(err, ErrAsymmetricPortal) {
		t.Errorf("Expected ErrAsymmetricPortal, got %v", err)
	}
}

func TestValidateRejectsBadSpawn(t *testing.T) {
	w := corridorWorld()
	w.Spawn.Pos = geom.Point{X: 100, Y: 100}
	if err := w.Validate(); !errors.Is(err, ErrInvalidSpawn) {
		t.Errorf("Expected ErrInvalidSpawn for out-of-sector position, got %v", err)
	}

	w = corridorWorld()
	w.Spawn.EyeZ = 9
	if err := w.Validate(); !errors.Is(err, ErrInvalidSpawn) {
		t.Errorf("Expected ErrInvalidSpawn for eye height above ceiling, got %v", err)
	}

	w = corridorWorld()
	w.Spawn.Sector = 5
	if err := w.Validate(); !errors.Is(err, ErrInvalidSpawn) {
		t.Errorf("Expected ErrInvalidSpawn for out-of-range sector, got %v", err)
	}
}

const testWorldJSON = `{
  "name": "Test Corridor",
  "sectors": [
    {
      "floor": 0, "ceil": 4,
      "vertices": [[0,0],[4,0],[4,4],[0,4]],
      "neighbors": [-1, 1, -1, -1],
      "wall_color": "#808080"
    },
    {
      "floor": 0, "ceil": 4,
      "vertices": [[4,0],[8,0],[8,4],[4,4]],
      "neighbors": [-1, -1, -1, 0],
      "wall_color": "#404040"
    }
  ],
  "spawn": {"x": 2, "y": 2, "angle": 0, "sector": 0, "eye_height": 1.7}
}`

func writeTempWorld(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "world-*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestLoadValidWorld(t *testing.T) {
	path := writeTempWorld(t, testWorldJSON)

	w, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load world: %v", err)
	}

	if w.Name != "Test Corridor" {
		t.Errorf("Expected name 'Test Corridor', got %q", w.Name)
	}
	if len(w.Sectors) != 2 {
		t.Fatalf("Expected 2 sectors, got %d", len(w.Sectors))
	}
	if dst, ok := w.Sectors[0].Neighbors[1].Portal(); !ok || dst != 1 {
		t.Errorf("Expected sector 0 edge 1 to be a portal to 1, got (%d, %v)", dst, ok)
	}
	if w.Sectors[0].Neighbors[0].IsPortal() {
		t.Error("Expected sector 0 edge 0 to be solid")
	}
	want := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	if w.Sectors[0].WallColor != want {
		t.Errorf("Expected wall color %v, got %v", want, w.Sectors[0].WallColor)
	}
	if w.Spawn.EyeZ != 1.7 {
		t.Errorf("Expected spawn eye height 1.7, got %v", w.Spawn.EyeZ)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeTempWorld(t, "{not json")

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestLoadRejectsBadNeighborSentinel(t *testing.T) {
	path := writeTempWorld(t, `{
  "name": "bad",
  "sectors": [
    {"floor": 0, "ceil": 4, "vertices": [[0,0],[4,0],[4,4],[0,4]],
     "neighbors": [-2, -1, -1, -1], "wall_color": "#808080"}
  ],
  "spawn": {"x": 2, "y": 2, "angle": 0, "sector": 0, "eye_height": 1.7}
}`)

	_, err := Load(path)
	if !errors.Is(err, ErrDanglingPortal) {
		t.Errorf("Expected ErrDanglingPortal for neighbor -2, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.json")

	if err := Save(Demo(), path); err != nil {
		t.Fatalf("Failed to save world: %v", err)
	}

	w, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload saved world: %v", err)
	}

	orig := Demo()
	if w.Name != orig.Name {
		t.Errorf("Expected name %q, got %q", orig.Name, w.Name)
	}
	if len(w.Sectors) != len(orig.Sectors) {
		t.Fatalf("Expected %d sectors, got %d", len(orig.Sectors), len(w.Sectors))
	}
	for i := range orig.Sectors {
		if len(w.Sectors[i].Boundary) != len(orig.Sectors[i].Boundary) {
			t.Errorf("Sector %d: expected %d vertices, got %d", i,
				len(orig.Sectors[i].Boundary), len(w.Sectors[i].Boundary))
		}
		for j := range orig.Sectors[i].Neighbors {
			if w.Sectors[i].Neighbors[j] != orig.Sectors[i].Neighbors[j] {
				t.Errorf("Sector %d edge %d: neighbor mismatch after round trip", i, j)
			}
		}
		if w.Sectors[i].WallColor != orig.Sectors[i].WallColor {
			t.Errorf("Sector %d: wall color mismatch after round trip", i)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1a2b3c")
	if err != nil {
		t.Fatalf("Failed to parse color: %v", err)
	}
	want := color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}
	if c != want {
		t.Errorf("Expected %v, got %v", want, c)
	}

	for _, bad := range []string{"", "1a2b3c", "#1a2b3", "#1a2b3cff", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestFormatHexColorRoundTrip(t *testing.T) {
	orig := color.RGBA{R: 0xab, G: 0x04, B: 0xef, A: 0xff}
	c, err := ParseHexColor(FormatHexColor(orig))
	if err != nil {
		t.Fatalf("Failed to parse formatted color: %v", err)
	}
	if c != orig {
		t.Errorf("Expected %v after round trip, got %v", orig, c)
	}
}

func TestScanWorlds(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "good.json"), []byte(testWorldJSON), 0644); err != nil {
		t.Fatalf("Failed to write world file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("Failed to write broken file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a world"), 0644); err != nil {
		t.Fatalf("Failed to write text file: %v", err)
	}

	worlds, err := ScanWorlds(dir)
	if err != nil {
		t.Fatalf("Failed to scan worlds: %v", err)
	}
	if len(worlds) != 1 {
		t.Fatalf("Expected 1 loadable world, got %d", len(worlds))
	}
	if worlds[0].Name != "Test Corridor" {
		t.Errorf("Expected 'Test Corridor', got %q", worlds[0].Name)
	}
	if worlds[0].Sectors != 2 {
		t.Errorf("Expected 2 sectors, got %d", worlds[0].Sectors)
	}
}

func TestScanWorldsMissingDir(t *testing.T) {
	if _, err := ScanWorlds(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
