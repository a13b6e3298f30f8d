package render

import "image/color"

// Frame is the CPU-side raster the renderer paints each tick. Pix holds
// 4 bytes per pixel (RGBA, row-major), the layout both the desktop
// backend's WritePixels and the terminal backend's cells consume directly.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize reallocates the pixel buffer if the size changed. Sizes below
// 1x1 are raised to 1x1. Old contents are not preserved.
func (f *Frame) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if f.Width == width && f.Height == height && f.Pix != nil {
		return
	}
	f.Width = width
	f.Height = height
	f.Pix = make([]byte, 4*width*height)
}

// Fill paints the whole frame with one color.
func (f *Frame) Fill(c color.RGBA) {
	row := 4 * f.Width
	for x := 0; x < f.Width; x++ {
		i := 4 * x
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
	for y := 1; y < f.Height; y++ {
		copy(f.Pix[y*row:(y+1)*row], f.Pix[:row])
	}
}

// Set paints a single pixel. Coordinates outside the frame are ignored.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := 4 * (y*f.Width + x)
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// At returns the pixel at (x, y). Out-of-range coordinates return zero.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return color.RGBA{}
	}
	i := 4 * (y*f.Width + x)
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// FillSpan paints the vertical run of column x from y0 to y1 inclusive.
// The run is clamped to the frame; an inverted range paints nothing. This
// is the primitive the portal renderer draws everything with.
func (f *Frame) FillSpan(x, y0, y1 int, c color.RGBA) {
	if x < 0 || x >= f.Width {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= f.Height {
		y1 = f.Height - 1
	}
	for y := y0; y <= y1; y++ {
		i := 4 * (y*f.Width + x)
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
}

// FillRect paints an axis-aligned rectangle spanning (x0, y0) to (x1, y1)
// inclusive, clamped to the frame.
func (f *Frame) FillRect(x0, y0, x1, y1 int, c color.RGBA) {
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= f.Width {
		x1 = f.Width - 1
	}
	for x := x0; x <= x1; x++ {
		f.FillSpan(x, y0, y1, c)
	}
}

// DrawLine paints a one-pixel line between two points using integer
// Bresenham stepping. Overlays use it; the first-person view never does.
func (f *Frame) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y0 - y1
	if dy > 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		f.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}
