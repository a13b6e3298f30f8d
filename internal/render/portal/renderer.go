// Package portal implements the first-person sector renderer. Each frame it
// walks the sector graph breadth-first starting at the viewer's sector,
// stepping through portal edges, and paints every screen column exactly once
// per visible surface using per-column vertical clip bounds that only ever
// narrow as the traversal descends through portals.
package portal

import (
	"image/color"
	"math"

	"chosenoffset.com/undercroft/internal/render"
	"chosenoffset.com/undercroft/internal/viewer"
	"chosenoffset.com/undercroft/internal/world"
)

// Options tune the projection and traversal.
type Options struct {
	// HFOVDeg and VFOVDeg are the horizontal and vertical fields of view
	// in degrees.
	HFOVDeg float64
	VFOVDeg float64

	// NearClip is the minimum view-space depth. Edge endpoints at or
	// behind it are clipped to it before projection, so no projection
	// ever divides by a non-positive depth.
	NearClip float64

	// QueueBudget caps how many traversal entries one frame may process.
	// The traversal keeps no visited set, so without a cap a cycle of
	// mutually visible portals could re-enqueue sectors indefinitely.
	QueueBudget int

	// Ceiling, Floor and Background are the flat fill colors. Background
	// shows only where the traversal was truncated.
	Ceiling    color.RGBA
	Floor      color.RGBA
	Background color.RGBA
}

// DefaultOptions returns the standard projection settings.
func DefaultOptions() Options {
	return Options{
		HFOVDeg:     90,
		VFOVDeg:     64,
		NearClip:    1e-4,
		QueueBudget: 256,
		Ceiling:     color.RGBA{R: 0x26, G: 0x26, B: 0x2b, A: 0xff},
		Floor:       color.RGBA{R: 0x33, G: 0x2e, B: 0x26, A: 0xff},
		Background:  color.RGBA{R: 0x0a, G: 0x0a, B: 0x0c, A: 0xff},
	}
}

// Stats reports what a single Render call did.
type Stats struct {
	SectorsDrawn    int // traversal entries processed; revisits count again
	WallSpans       int // solid wall columns painted
	PortalsEnqueued int
	Truncated       bool // the queue budget was hit
}

// task is one pending traversal entry: draw a sector restricted to the
// screen columns x1 through x2 inclusive.
type task struct {
	sector int
	x1, x2 int
}

// clipBuffer holds, per screen column, the still-open vertical window.
// Rows outside [top[x], bottom[x]] were already painted by a nearer
// sector and must not be touched again.
type clipBuffer struct {
	top    []int
	bottom []int
}

func (cb *clipBuffer) reset(width, height int) {
	if len(cb.top) != width {
		cb.top = make([]int, width)
		cb.bottom = make([]int, width)
	}
	for x := 0; x < width; x++ {
		cb.top[x] = 0
		cb.bottom[x] = height - 1
	}
}

// Renderer draws a world from a viewer pose into a Frame. A Renderer is
// not safe for concurrent use; the clip buffer and queue are reused
// across frames.
type Renderer struct {
	opts   Options
	width  int
	height int
	xscale float64
	yscale float64

	clip  clipBuffer
	queue []task
	stats Stats
}

// New creates a renderer for the given frame size. Zero-valued option
// fields fall back to DefaultOptions.
func New(width, height int, opts Options) *Renderer {
	def := DefaultOptions()
	if opts.HFOVDeg <= 0 {
		opts.HFOVDeg = def.HFOVDeg
	}
	if opts.VFOVDeg <= 0 {
		opts.VFOVDeg = def.VFOVDeg
	}
	if opts.NearClip <= 0 {
		opts.NearClip = def.NearClip
	}
	if opts.QueueBudget <= 0 {
		opts.QueueBudget = def.QueueBudget
	}
	if opts.Ceiling.A == 0 {
		opts.Ceiling = def.Ceiling
	}
	if opts.Floor.A == 0 {
		opts.Floor = def.Floor
	}
	if opts.Background.A == 0 {
		opts.Background = def.Background
	}
	r := &Renderer{opts: opts}
	r.Resize(width, height)
	return r
}

// Resize adapts the projection scales and clip buffer to a new frame size.
func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	r.xscale = float64(width) / 2 / math.Tan(r.opts.HFOVDeg/2*math.Pi/180)
	r.yscale = float64(height) / 2 / math.Tan(r.opts.VFOVDeg/2*math.Pi/180)
}

// Size returns the frame size the renderer is currently configured for.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// LastStats returns the counters from the most recent Render call.
func (r *Renderer) LastStats() Stats {
	return r.stats
}

// Render paints one complete frame of the world as seen from v. The frame
// is resized into the renderer's projection if the sizes disagree. Render
// resets all transient state on entry, so calling it twice with the same
// pose and world produces byte-identical frames.
func (r *Renderer) Render(v *viewer.Viewer, w *world.World, f *render.Frame) {
	if f.Width != r.width || f.Height != r.height {
		r.Resize(f.Width, f.Height)
	}
	f.Fill(r.opts.Background)
	r.clip.reset(r.width, r.height)
	r.stats = Stats{}

	sinA, cosA := math.Sincos(v.Angle)

	queue := r.queue[:0]
	queue = append(queue, task{sector: v.Sector, x1: 0, x2: r.width - 1})
	for head := 0; head < len(queue); head++ {
		if r.stats.SectorsDrawn >= r.opts.QueueBudget {
			r.stats.Truncated = true
			break
		}
		r.stats.SectorsDrawn++
		queue = r.drawSector(v, w, f, queue[head], sinA, cosA, queue)
	}
	r.queue = queue[:0]
}

// drawSector paints every edge of one sector within the task's column range
// and appends a task for each portal edge that survives projection.
func (r *Renderer) drawSector(v *viewer.Viewer, w *world.World, f *render.Frame, t task, sinA, cosA float64, queue []task) []task {
	s := &w.Sectors[t.sector]

	for i := range s.Boundary {
		p1, p2 := s.Edge(i)

		// Transform both endpoints into viewer space: tx runs across the
		// view, tz is depth along the facing direction.
		dx1, dy1 := p1.X-v.Pos.X, p1.Y-v.Pos.Y
		dx2, dy2 := p2.X-v.Pos.X, p2.Y-v.Pos.Y
		tx1, tz1 := dx1*sinA-dy1*cosA, dx1*cosA+dy1*sinA
		tx2, tz2 := dx2*sinA-dy2*cosA, dx2*cosA+dy2*sinA

		// Near-plane clipping happens before projection so that every
		// depth divided by below is strictly positive.
		if tz1 <= r.opts.NearClip && tz2 <= r.opts.NearClip {
			continue
		}
		if tz1 <= r.opts.NearClip {
			tx1, tz1 = clipNear(tx1, tz1, tx2, tz2, r.opts.NearClip)
		} else if tz2 <= r.opts.NearClip {
			tx2, tz2 = clipNear(tx2, tz2, tx1, tz1, r.opts.NearClip)
		}

		sx1 := float64(r.width)/2 - tx1*r.xscale/tz1
		sx2 := float64(r.width)/2 - tx2*r.xscale/tz2
		x1 := int(math.Round(sx1))
		x2 := int(math.Round(sx2))

		// Back-facing or edge-on walls project right-to-left or to a
		// single column; either way there is nothing to paint.
		if x1 >= x2 {
			continue
		}
		beginX := max(x1, t.x1)
		endX := min(x2, t.x2)
		if beginX > endX {
			continue
		}

		// Wall top and bottom in screen rows at each endpoint. Screen y
		// grows downward, so higher world z means a smaller row.
		cya1 := float64(r.height)/2 - (s.Ceil-v.EyeZ)*r.yscale/tz1
		cyb1 := float64(r.height)/2 - (s.Floor-v.EyeZ)*r.yscale/tz1
		cya2 := float64(r.height)/2 - (s.Ceil-v.EyeZ)*r.yscale/tz2
		cyb2 := float64(r.height)/2 - (s.Floor-v.EyeZ)*r.yscale/tz2

		neighbor, isPortal := s.Neighbors[i].Portal()
		var nya1, nyb1, nya2, nyb2 float64
		var step color.RGBA
		if isPortal {
			ns := &w.Sectors[neighbor]
			nya1 = float64(r.height)/2 - (ns.Ceil-v.EyeZ)*r.yscale/tz1
			nyb1 = float64(r.height)/2 - (ns.Floor-v.EyeZ)*r.yscale/tz1
			nya2 = float64(r.height)/2 - (ns.Ceil-v.EyeZ)*r.yscale/tz2
			nyb2 = float64(r.height)/2 - (ns.Floor-v.EyeZ)*r.yscale/tz2
			step = stepShade(s.WallColor)
		}

		span := float64(x2 - x1)
		for x := beginX; x <= endX; x++ {
			top, bottom := r.clip.top[x], r.clip.bottom[x]
			if top > bottom {
				continue // column fully occluded by nearer sectors
			}

			// Interpolate wall top/bottom linearly in screen x. This is
			// an approximation (row positions are not affine in x) but
			// it is stable and the error stays within a pixel or two at
			// these fields of view.
			ft := float64(x-x1) / span
			cya := clamp(int(math.Round(cya1+ft*(cya2-cya1))), top, bottom)
			cyb := clamp(int(math.Round(cyb1+ft*(cyb2-cyb1))), top, bottom)

			// Ceiling above the wall slice, floor below it.
			f.FillSpan(x, top, cya-1, r.opts.Ceiling)
			f.FillSpan(x, cyb+1, bottom, r.opts.Floor)

			if !isPortal {
				if cya <= cyb {
					f.FillSpan(x, cya, cyb, s.WallColor)
					r.stats.WallSpans++
				}
				continue
			}

			nya := clamp(int(math.Round(nya1+ft*(nya2-nya1))), top, bottom)
			nyb := clamp(int(math.Round(nyb1+ft*(nyb2-nyb1))), top, bottom)

			// Step faces: where the neighbor's ceiling is lower or its
			// floor higher, the exposed band of this sector's wall shows.
			f.FillSpan(x, cya, nya-1, step)
			f.FillSpan(x, nyb+1, cyb, step)

			// Narrow the column window to the opening between the two
			// sectors. The bounds only ever tighten.
			r.clip.top[x] = clamp(max(cya, nya), top, r.height-1)
			r.clip.bottom[x] = clamp(min(cyb, nyb), 0, bottom)
		}

		if isPortal {
			queue = append(queue, task{sector: neighbor, x1: beginX, x2: endX})
			r.stats.PortalsEnqueued++
		}
	}
	return queue
}

// clipNear returns the intersection of the segment from (bx, bz), at or
// behind the near plane, to (ax, az) in front of it, with depth == near.
func clipNear(bx, bz, ax, az, near float64) (x, z float64) {
	t := (near - bz) / (az - bz)
	return bx + t*(ax-bx), near
}

// stepShade darkens a wall color for the step faces above and below a
// portal opening, so ledges read as distinct surfaces.
func stepShade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R - c.R/3, G: c.G - c.G/3, B: c.B - c.B/3, A: c.A}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
