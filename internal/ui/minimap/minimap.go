// Package minimap draws a top-down overlay of the sector graph: sector
// outlines with portal edges picked out, plus the viewer's position and
// facing. It paints directly into the frame, in the top-right corner.
package minimap

import (
	"image/color"
	"math"

	"chosenoffset.com/undercroft/internal/render"
	"chosenoffset.com/undercroft/internal/viewer"
	"chosenoffset.com/undercroft/internal/world"
)

// Config controls the overlay's size and palette.
type Config struct {
	Size   int // box edge in pixels, clamped to a third of the frame
	Margin int // distance from the frame edges

	Panel  color.RGBA
	Wall   color.RGBA
	Portal color.RGBA
	Player color.RGBA
	Facing color.RGBA
}

// DefaultConfig returns the standard minimap settings.
func DefaultConfig() Config {
	return Config{
		Size:   120,
		Margin: 4,
		Panel:  color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff},
		Wall:   color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff},
		Portal: color.RGBA{R: 0xd4, G: 0x44, B: 0x44, A: 0xff},
		Player: color.RGBA{R: 0x50, G: 0xd0, B: 0x50, A: 0xff},
		Facing: color.RGBA{R: 0x50, G: 0xd0, B: 0x50, A: 0xff},
	}
}

// Minimap draws the overlay described by its config.
type Minimap struct {
	cfg Config
}

// New creates a minimap with the given configuration.
func New(cfg Config) *Minimap {
	return &Minimap{cfg: cfg}
}

// Draw paints the overlay into the frame. The whole world is fitted into
// the box, so the map never scrolls.
func (m *Minimap) Draw(f *render.Frame, w *world.World, v *viewer.Viewer) {
	size := m.cfg.Size
	if limit := f.Width / 3; size > limit {
		size = limit
	}
	if limit := f.Height - 2*m.cfg.Margin; size > limit {
		size = limit
	}
	if size < 16 {
		return // frame too small for a useful map
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range w.Sectors {
		for _, p := range s.Boundary {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 || spanY <= 0 {
		return
	}

	pad := 3
	inner := float64(size - 2*pad)
	scale := math.Min(inner/spanX, inner/spanY)

	x0 := f.Width - size - m.cfg.Margin
	y0 := m.cfg.Margin
	f.FillRect(x0, y0, x0+size-1, y0+size-1, m.cfg.Panel)

	// World y grows downward, same as screen y; no flip needed.
	toPx := func(wx, wy float64) (int, int) {
		return x0 + pad + int(math.Round((wx-minX)*scale)),
			y0 + pad + int(math.Round((wy-minY)*scale))
	}

	for _, s := range w.Sectors {
		for i := range s.Boundary {
			p1, p2 := s.Edge(i)
			c := m.cfg.Wall
			if s.Neighbors[i].IsPortal() {
				c = m.cfg.Portal
			}
			ax, ay := toPx(p1.X, p1.Y)
			bx, by := toPx(p2.X, p2.Y)
			f.DrawLine(ax, ay, bx, by, c)
		}
	}

	px, py := toPx(v.Pos.X, v.Pos.Y)
	f.FillRect(px-1, py-1, px+1, py+1, m.cfg.Player)
	fx := px + int(math.Round(6 * math.Cos(v.Angle)))
	fy := py + int(math.Round(6 * math.Sin(v.Angle)))
	f.DrawLine(px, py, fx, fy, m.cfg.Facing)
}
