// Package viewer owns the first-person pose and the sector-aware movement
// that keeps it consistent with the world graph: polygon containment, portal
// crossing, and vertical clearance.
package viewer

import (
	"math"

	"chosenoffset.com/undercroft/internal/geom"
	"chosenoffset.com/undercroft/internal/world"
)

// Intents are the per-tick boolean inputs the movement controller consumes.
// Interact and Fire are delivered for gameplay layers on top of this core;
// Advance ignores them.
type Intents struct {
	TurnLeft    bool
	TurnRight   bool
	MoveForward bool
	MoveBack    bool
	Interact    bool
	Fire        bool
}

// Default tuning, used when the world's spawn does not override it.
const (
	DefaultMoveSpeed = 4.0 // world units per second
	DefaultTurnSpeed = 2.6 // radians per second
)

// Viewer is the first-person pose. The central invariant: after every
// Advance the position lies inside the current sector's boundary, with
// portal crossings updating the sector within the same tick.
//
// The facing convention matches the y-down map convention of the world:
// forward is (cos Angle, sin Angle), angle 0 looks along +x, and increasing
// the angle turns the view to the right.
type Viewer struct {
	Pos    geom.Point
	EyeZ   float64 // absolute eye height; never adjusted on sector changes
	Angle  float64 // kept normalized in [0, 2*pi)
	Sector int

	MoveSpeed float64
	TurnSpeed float64
}

// New places a viewer at the world's spawn pose.
func New(w *world.World) *Viewer {
	sp := w.Spawn
	v := &Viewer{
		Pos:       sp.Pos,
		EyeZ:      sp.EyeZ,
		Angle:     geom.NormalizeAngle(sp.Angle),
		Sector:    sp.Sector,
		MoveSpeed: sp.MoveSpeed,
		TurnSpeed: sp.TurnSpeed,
	}
	if v.MoveSpeed == 0 {
		v.MoveSpeed = DefaultMoveSpeed
	}
	if v.TurnSpeed == 0 {
		v.TurnSpeed = DefaultTurnSpeed
	}
	return v
}

// Advance applies one tick of intents to the pose. Turning happens first, so
// the displacement uses the new facing angle. A candidate position inside
// the current sector commits directly; one outside it commits only when the
// path from the old position crosses a portal edge whose far sector leaves
// the eye strictly between floor and ceiling and contains the landing point.
// Without the landing check a crossing that grazes a portal corner could
// commit a position outside both sectors, breaking the containment
// invariant. A rejected move leaves the position unchanged for the tick;
// there is no error path here.
//
// The crossing test is a single segment against single edges, assuming the
// per-tick displacement is small next to sector size. Fast enough motion
// could tunnel a corner; that is a known limitation of the scheme, not
// something this layer compensates for.
func (v *Viewer) Advance(w *world.World, in Intents, dt float64) {
	turn := 0.0
	if in.TurnLeft {
		turn -= 1
	}
	if in.TurnRight {
		turn += 1
	}
	if turn != 0 {
		v.Angle = geom.NormalizeAngle(v.Angle + turn*v.TurnSpeed*dt)
	}

	move := 0.0
	if in.MoveForward {
		move += 1
	}
	if in.MoveBack {
		move -= 1
	}
	if move == 0 {
		return
	}

	step := move * v.MoveSpeed * dt
	candidate := geom.Point{
		X: v.Pos.X + math.Cos(v.Angle)*step,
		Y: v.Pos.Y + math.Sin(v.Angle)*step,
	}

	sector := &w.Sectors[v.Sector]
	if sector.Contains(candidate) {
		v.Pos = candidate
		return
	}

	// Attempted sector transition. Portal edges are tested in boundary
	// order and the first one the path crosses decides the outcome.
	for i := range sector.Neighbors {
		dst, ok := sector.Neighbors[i].Portal()
		if !ok {
			continue
		}
		a, b := sector.Edge(i)
		if !geom.SegmentsIntersect(v.Pos, candidate, a, b) {
			continue
		}
		far := &w.Sectors[dst]
		if v.EyeZ > far.Floor && v.EyeZ < far.Ceil && far.Contains(candidate) {
			v.Pos = candidate
			v.Sector = dst
		}
		return
	}
}
