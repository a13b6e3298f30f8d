package viewer

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"chosenoffset.com/undercroft/internal/geom"
	"chosenoffset.com/undercroft/internal/world"
)

const tick = 1.0 / 60.0

// corridor builds two square sectors sharing a portal edge at x=4, with the
// second sector's heights configurable for the clearance scenarios.
func corridor(farFloor, farCeil float64) *world.World {
	return &world.World{
		Name: "corridor",
		Sectors: []world.Sector{
			{
				Floor:     0,
				Ceil:      4,
				Boundary:  []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
				Neighbors: []world.Neighbor{world.Solid(), world.PortalTo(1), world.Solid(), world.Solid()},
				WallColor: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
			},
			{
				Floor:     farFloor,
				Ceil:      farCeil,
				Boundary:  []geom.Point{{X: 4, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 4, Y: 4}},
				Neighbors: []world.Neighbor{world.Solid(), world.Solid(), world.Solid(), world.PortalTo(0)},
				WallColor: color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
			},
		},
		Spawn: world.Spawn{Pos: geom.Point{X: 2, Y: 2}, Angle: 0, Sector: 0, EyeZ: 1.7},
	}
}

// closedBox is a single sector with no portals at all.
func closedBox() *world.World {
	return &world.World{
		Name: "box",
		Sectors: []world.Sector{
			{
				Floor:     0,
				Ceil:      4,
				Boundary:  []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
				Neighbors: []world.Neighbor{world.Solid(), world.Solid(), world.Solid(), world.Solid()},
				WallColor: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
			},
		},
		Spawn: world.Spawn{Pos: geom.Point{X: 2, Y: 2}, Angle: 0, Sector: 0, EyeZ: 1.7},
	}
}

func TestNewAppliesSpawnAndDefaults(t *testing.T) {
	w := corridor(0, 4)
	v := New(w)

	if v.Pos != w.Spawn.Pos {
		t.Errorf("Expected spawn position %v, got %v", w.Spawn.Pos, v.Pos)
	}
	if v.MoveSpeed != DefaultMoveSpeed {
		t.Errorf("Expected default move speed %v, got %v", DefaultMoveSpeed, v.MoveSpeed)
	}
	if v.TurnSpeed != DefaultTurnSpeed {
		t.Errorf("Expected default turn speed %v, got %v", DefaultTurnSpeed, v.TurnSpeed)
	}

	w.Spawn.MoveSpeed = 7
	w.Spawn.TurnSpeed = 1.5
	v = New(w)
	if v.MoveSpeed != 7 || v.TurnSpeed != 1.5 {
		t.Errorf("Expected spawn speeds (7, 1.5), got (%v, %v)", v.MoveSpeed, v.TurnSpeed)
	}
}

func TestCorridorCrossing(t *testing.T) {
	w := corridor(0, 4)
	v := New(w)

	// 2 units to the portal at 4 units/s: half a second of forward ticks.
	for i := 0; i < 60; i++ {
		v.Advance(w, Intents{MoveForward: true}, tick)
		if v.Sector == 1 {
			break
		}
	}

	if v.Sector != 1 {
		t.Fatalf("Expected viewer to cross into sector 1, still in %d at %v", v.Sector, v.Pos)
	}
	if !w.Sectors[1].Contains(v.Pos) {
		t.Errorf("Expected position %v to be inside sector 1 after crossing", v.Pos)
	}
}

func TestBlockedByRaisedFloor(t *testing.T) {
	w := corridor(2.5, 6) // far floor above the 1.7 eye height
	v := New(w)

	for i := 0; i < 120; i++ {
		v.Advance(w, Intents{MoveForward: true}, tick)
	}

	if v.Sector != 0 {
		t.Fatalf("Expected viewer to stay in sector 0, got %d", v.Sector)
	}
	if !w.Sectors[0].Contains(v.Pos) {
		t.Errorf("Expected position %v to remain inside sector 0", v.Pos)
	}
	if v.Pos.X > 4 {
		t.Errorf("Expected position to stop at the portal plane, got x=%v", v.Pos.X)
	}
	// Two seconds of walking into the blocked portal should leave the
	// viewer pressed against it, one step short at most.
	if v.Pos.X < 4-v.MoveSpeed*tick-1e-9 {
		t.Errorf("Expected position near x=4, got x=%v", v.Pos.X)
	}
}

func TestBlockedByLoweredCeiling(t *testing.T) {
	w := corridor(0, 1.5) // far ceiling below the 1.7 eye height
	v := New(w)

	for i := 0; i < 120; i++ {
		v.Advance(w, Intents{MoveForward: true}, tick)
	}

	if v.Sector != 0 {
		t.Errorf("Expected viewer to stay in sector 0, got %d", v.Sector)
	}
}

func TestMovementRejectedInClosedSector(t *testing.T) {
	w := closedBox()

	for i := 0; i < 8; i++ {
		v := New(w)
		v.Angle = float64(i) * math.Pi / 4

		start := v.Pos
		// One huge tick puts the candidate far outside the box.
		v.Advance(w, Intents{MoveForward: true}, 10)

		if v.Pos != start {
			t.Errorf("Angle %v: expected rejected move to keep %v, got %v", v.Angle, start, v.Pos)
		}
		if v.Sector != 0 {
			t.Errorf("Angle %v: expected sector 0, got %d", v.Angle, v.Sector)
		}
	}
}

func TestContainmentInvariantRandomWalk(t *testing.T) {
	w := world.Demo()
	if err := w.Validate(); err != nil {
		t.Fatalf("Demo world failed validation: %v", err)
	}
	v := New(w)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		in := Intents{
			TurnLeft:    rng.Intn(4) == 0,
			TurnRight:   rng.Intn(4) == 0,
			MoveForward: rng.Intn(2) == 0,
			MoveBack:    rng.Intn(4) == 0,
		}
		v.Advance(w, in, tick)

		if !w.Sectors[v.Sector].Contains(v.Pos) {
			t.Fatalf("Tick %d: position %v escaped sector %d", i, v.Pos, v.Sector)
		}
		if v.Angle < 0 || v.Angle >= 2*math.Pi {
			t.Fatalf("Tick %d: angle %v left [0, 2pi)", i, v.Angle)
		}
	}
}

func TestTurnUsesNewAngleForMove(t *testing.T) {
	w := closedBox()
	v := New(w)
	start := v.Pos

	v.Advance(w, Intents{TurnRight: true, MoveForward: true}, tick)

	wantAngle := geom.NormalizeAngle(v.TurnSpeed * tick)
	if math.Abs(v.Angle-wantAngle) > 1e-12 {
		t.Fatalf("Expected angle %v after turn, got %v", wantAngle, v.Angle)
	}
	wantX := start.X + math.Cos(wantAngle)*v.MoveSpeed*tick
	wantY := start.Y + math.Sin(wantAngle)*v.MoveSpeed*tick
	if math.Abs(v.Pos.X-wantX) > 1e-12 || math.Abs(v.Pos.Y-wantY) > 1e-12 {
		t.Errorf("Expected displacement along the post-turn angle, got %v", v.Pos)
	}
}

func TestOpposedIntentsCancel(t *testing.T) {
	w := closedBox()
	v := New(w)
	start := v.Pos
	angle := v.Angle

	v.Advance(w, Intents{MoveForward: true, MoveBack: true, TurnLeft: true, TurnRight: true}, tick)

	if v.Pos != start {
		t.Errorf("Expected cancelled moves to keep position %v, got %v", start, v.Pos)
	}
	if v.Angle != angle {
		t.Errorf("Expected cancelled turns to keep angle %v, got %v", angle, v.Angle)
	}
}

func TestInteractAndFireAreIgnored(t *testing.T) {
	w := corridor(0, 4)
	v := New(w)
	start := *v

	v.Advance(w, Intents{Interact: true, Fire: true}, tick)

	if *v != start {
		t.Errorf("Expected interact/fire to leave the pose untouched, got %+v", *v)
	}
}

func TestAngleStaysNormalized(t *testing.T) {
	w := closedBox()
	v := New(w)

	for i := 0; i < 600; i++ {
		v.Advance(w, Intents{TurnLeft: true}, tick)
		if v.Angle < 0 || v.Angle >= 2*math.Pi {
			t.Fatalf("Tick %d: angle %v left [0, 2pi)", i, v.Angle)
		}
	}
}
