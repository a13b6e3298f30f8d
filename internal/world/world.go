package world

import (
	"errors"
	"fmt"

	"chosenoffset.com/undercroft/internal/geom"
)

// Validation failures reported while constructing a world. They are strictly
// load-time errors: everything downstream assumes a world that passed
// Validate and never re-checks these conditions per frame.
var (
	ErrInvalidSectorGeometry = errors.New("invalid sector geometry")
	ErrDanglingPortal        = errors.New("dangling portal reference")
	ErrAsymmetricPortal      = errors.New("asymmetric portal")
	ErrInvalidSpawn          = errors.New("invalid spawn")
)

// Spawn is the viewer's starting pose, carried in the world description.
// MoveSpeed and TurnSpeed may be zero, in which case the viewer falls back
// to its defaults.
type Spawn struct {
	Pos       geom.Point
	Angle     float64 // facing angle in radians
	Sector    int
	EyeZ      float64 // eye height as an absolute world Z
	MoveSpeed float64 // units per second
	TurnSpeed float64 // radians per second
}

// World is the immutable sector graph plus the spawn pose.
type World struct {
	Name    string
	Sectors []Sector
	Spawn   Spawn
}

// Polygons flatter than this are treated as degenerate.
const minSectorArea = 1e-9

// Validate checks every structural invariant the renderer and movement
// controller rely on: sector geometry (vertex count, winding, convexity,
// floor below ceiling, neighbor list alignment), portal reference ranges,
// portal symmetry, and the spawn pose.
func (w *World) Validate() error {
	if len(w.Sectors) == 0 {
		return fmt.Errorf("%w: world has no sectors", ErrInvalidSectorGeometry)
	}

	for i := range w.Sectors {
		s := &w.Sectors[i]
		if err := validateSector(s); err != nil {
			return fmt.Errorf("sector %d: %w", i, err)
		}
		for e, n := range s.Neighbors {
			dst, ok := n.Portal()
			if !ok {
				continue
			}
			if dst < 0 || dst >= len(w.Sectors) || dst == i {
				return fmt.Errorf("%w: sector %d edge %d points to sector %d", ErrDanglingPortal, i, e, dst)
			}
		}
	}

	// Every portal needs a return portal, or movement through it would
	// strand the viewer in a sector it cannot be traced back from.
	for i := range w.Sectors {
		for e, n := range w.Sectors[i].Neighbors {
			dst, ok := n.Portal()
			if !ok {
				continue
			}
			if !hasPortalTo(&w.Sectors[dst], i) {
				return fmt.Errorf("%w: sector %d edge %d leads to sector %d, which has no portal back", ErrAsymmetricPortal, i, e, dst)
			}
		}
	}

	return w.validateSpawn()
}

func validateSector(s *Sector) error {
	if len(s.Boundary) < 3 {
		return fmt.Errorf("%w: only %d vertices", ErrInvalidSectorGeometry, len(s.Boundary))
	}
	if len(s.Neighbors) != len(s.Boundary) {
		return fmt.Errorf("%w: %d edges but %d neighbor entries", ErrInvalidSectorGeometry, len(s.Boundary), len(s.Neighbors))
	}
	if s.Floor >= s.Ceil {
		return fmt.Errorf("%w: floor %g not below ceiling %g", ErrInvalidSectorGeometry, s.Floor, s.Ceil)
	}

	area := geom.SignedArea(s.Boundary)
	if area < minSectorArea {
		return fmt.Errorf("%w: boundary area %g (zero area or counterclockwise winding)", ErrInvalidSectorGeometry, area)
	}

	n := len(s.Boundary)
	for i := 0; i < n; i++ {
		prev := s.Boundary[(i+n-1)%n]
		cur := s.Boundary[i]
		next := s.Boundary[(i+1)%n]
		if geom.Cross(prev, cur, next) < -1e-9 {
			return fmt.Errorf("%w: concave turn at vertex %d", ErrInvalidSectorGeometry, i)
		}
	}
	return nil
}

func (w *World) validateSpawn() error {
	sp := w.Spawn
	if sp.Sector < 0 || sp.Sector >= len(w.Sectors) {
		return fmt.Errorf("%w: sector %d out of range", ErrInvalidSpawn, sp.Sector)
	}
	s := &w.Sectors[sp.Sector]
	if !s.Contains(sp.Pos) {
		return fmt.Errorf("%w: position (%g, %g) outside sector %d", ErrInvalidSpawn, sp.Pos.X, sp.Pos.Y, sp.Sector)
	}
	if sp.EyeZ <= s.Floor || sp.EyeZ >= s.Ceil {
		return fmt.Errorf("%w: eye height %g outside sector %d height range (%g, %g)", ErrInvalidSpawn, sp.EyeZ, sp.Sector, s.Floor, s.Ceil)
	}
	return nil
}

func hasPortalTo(s *Sector, dst int) bool {
	for _, n := range s.Neighbors {
		if to, ok := n.Portal(); ok && to == dst {
			return true
		}
	}
	return false
}
