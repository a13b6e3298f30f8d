package world

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"chosenoffset.com/undercroft/internal/geom"
)

// File form of the world. Neighbors use -1 for solid edges; vertices are
// [x, y] pairs; colors are #rrggbb strings.
type worldData struct {
	Name    string       `json:"name"`
	Sectors []sectorData `json:"sectors"`
	Spawn   spawnData    `json:"spawn"`
}

type sectorData struct {
	Floor     float64      `json:"floor"`
	Ceil      float64      `json:"ceil"`
	Vertices  [][2]float64 `json:"vertices"`
	Neighbors []int        `json:"neighbors"`
	WallColor string       `json:"wall_color"`
}

type spawnData struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Angle     float64 `json:"angle"`
	Sector    int     `json:"sector"`
	EyeHeight float64 `json:"eye_height"`
	MoveSpeed float64 `json:"move_speed,omitempty"`
	TurnSpeed float64 `json:"turn_speed,omitempty"`
}

// Load reads a world description from a JSON file and validates it.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}

	var wd worldData
	if err := json.Unmarshal(data, &wd); err != nil {
		return nil, fmt.Errorf("failed to parse world file %s: %w", path, err)
	}

	w, err := fromData(&wd)
	if err != nil {
		return nil, fmt.Errorf("invalid world in %s: %w", path, err)
	}
	return w, nil
}

// Save writes a world as indented JSON, the inverse of Load.
func Save(w *World, path string) error {
	data, err := json.MarshalIndent(toData(w), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode world %s: %w", w.Name, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write world file %s: %w", path, err)
	}
	return nil
}

func fromData(wd *worldData) (*World, error) {
	w := &World{
		Name:    wd.Name,
		Sectors: make([]Sector, len(wd.Sectors)),
	}

	for i, sd := range wd.Sectors {
		s := Sector{Floor: sd.Floor, Ceil: sd.Ceil}

		s.Boundary = make([]geom.Point, len(sd.Vertices))
		for j, v := range sd.Vertices {
			s.Boundary[j] = geom.Point{X: v[0], Y: v[1]}
		}

		s.Neighbors = make([]Neighbor, len(sd.Neighbors))
		for j, n := range sd.Neighbors {
			switch {
			case n == -1:
				s.Neighbors[j] = Solid()
			case n >= 0:
				s.Neighbors[j] = PortalTo(n)
			default:
				return nil, fmt.Errorf("%w: sector %d edge %d has neighbor %d", ErrDanglingPortal, i, j, n)
			}
		}

		c, err := ParseHexColor(sd.WallColor)
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", i, err)
		}
		s.WallColor = c
		w.Sectors[i] = s
	}

	w.Spawn = Spawn{
		Pos:       geom.Point{X: wd.Spawn.X, Y: wd.Spawn.Y},
		Angle:     geom.NormalizeAngle(wd.Spawn.Angle),
		Sector:    wd.Spawn.Sector,
		EyeZ:      wd.Spawn.EyeHeight,
		MoveSpeed: wd.Spawn.MoveSpeed,
		TurnSpeed: wd.Spawn.TurnSpeed,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func toData(w *World) *worldData {
	wd := &worldData{
		Name:    w.Name,
		Sectors: make([]sectorData, len(w.Sectors)),
		Spawn: spawnData{
			X:         w.Spawn.Pos.X,
			Y:         w.Spawn.Pos.Y,
			Angle:     w.Spawn.Angle,
			Sector:    w.Spawn.Sector,
			EyeHeight: w.Spawn.EyeZ,
			MoveSpeed: w.Spawn.MoveSpeed,
			TurnSpeed: w.Spawn.TurnSpeed,
		},
	}

	for i := range w.Sectors {
		s := &w.Sectors[i]
		sd := sectorData{
			Floor:     s.Floor,
			Ceil:      s.Ceil,
			Vertices:  make([][2]float64, len(s.Boundary)),
			Neighbors: make([]int, len(s.Neighbors)),
			WallColor: FormatHexColor(s.WallColor),
		}
		for j, v := range s.Boundary {
			sd.Vertices[j] = [2]float64{v.X, v.Y}
		}
		for j, n := range s.Neighbors {
			if dst, ok := n.Portal(); ok {
				sd.Neighbors[j] = dst
			} else {
				sd.Neighbors[j] = -1
			}
		}
		wd.Sectors[i] = sd
	}
	return wd
}

// ParseHexColor parses a #rrggbb string into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}

// FormatHexColor renders a color as the #rrggbb form ParseHexColor accepts.
func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
