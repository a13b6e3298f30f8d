// Package hud formats the status overlay. The backends own the actual text
// drawing, so the HUD's job is just to turn the current game state into a
// small stack of lines.
package hud

import (
	"fmt"
	"math"

	"chosenoffset.com/undercroft/internal/render/portal"
	"chosenoffset.com/undercroft/internal/viewer"
	"chosenoffset.com/undercroft/internal/world"
)

// Config controls which lines the HUD emits.
type Config struct {
	ShowPose        bool // viewer position and facing
	ShowRenderStats bool // traversal counters from the last frame
	MaxMessages     int  // most recent messages shown
}

// DefaultConfig returns the standard HUD configuration.
func DefaultConfig() Config {
	return Config{
		ShowPose:        true,
		ShowRenderStats: true,
		MaxMessages:     4,
	}
}

// HUD builds status lines from the viewer, world, and renderer state.
type HUD struct {
	cfg Config
}

// New creates a HUD with the given configuration.
func New(cfg Config) *HUD {
	return &HUD{cfg: cfg}
}

// Lines formats the overlay for the current tick. The first line names the
// world and the viewer's sector; optional lines follow, then messages.
func (h *HUD) Lines(v *viewer.Viewer, w *world.World, stats portal.Stats, messages []string) []string {
	sec := &w.Sectors[v.Sector]
	lines := []string{
		fmt.Sprintf("%s | sector %d  floor %.1f  ceil %.1f", w.Name, v.Sector, sec.Floor, sec.Ceil),
	}

	if h.cfg.ShowPose {
		deg := v.Angle * 180 / math.Pi
		lines = append(lines, fmt.Sprintf("pos %.1f,%.1f  facing %3.0f", v.Pos.X, v.Pos.Y, deg))
	}

	if h.cfg.ShowRenderStats {
		line := fmt.Sprintf("drawn %d  walls %d  portals %d", stats.SectorsDrawn, stats.WallSpans, stats.PortalsEnqueued)
		if stats.Truncated {
			line += "  (truncated)"
		}
		lines = append(lines, line)
	}

	if n := len(messages); n > 0 {
		if h.cfg.MaxMessages > 0 && n > h.cfg.MaxMessages {
			messages = messages[n-h.cfg.MaxMessages:]
		}
		lines = append(lines, messages...)
	}
	return lines
}
