package world

import (
	"image/color"
	"math"

	"chosenoffset.com/undercroft/internal/geom"
)

// Demo returns the built-in world used when no world file is given. Five
// sectors around an entry hall, covering the geometry the renderer has to
// handle: walls split into collinear segments where only part is a portal, a
// low corridor ceiling, a raised floor, a sunken floor, and a vault low
// enough to graze the viewer's head.
func Demo() *World {
	return &World{
		Name: "The Undercroft",
		Sectors: []Sector{
			{
				// Entry hall. North and south walls are split so the
				// corridor and vault openings take only part of each wall.
				Floor: 0, Ceil: 5,
				Boundary: []geom.Point{
					{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 7, Y: 0}, {X: 10, Y: 0},
					{X: 10, Y: 10}, {X: 6, Y: 10}, {X: 2, Y: 10}, {X: 0, Y: 10},
				},
				Neighbors: []Neighbor{
					Solid(), PortalTo(1), Solid(), PortalTo(2),
					Solid(), PortalTo(4), Solid(), Solid(),
				},
				WallColor: color.RGBA{R: 0x8a, G: 0x6f, B: 0x4d, A: 0xff},
			},
			{
				// North corridor, ceiling drops to 3.2.
				Floor: 0, Ceil: 3.2,
				Boundary: []geom.Point{
					{X: 3, Y: -8}, {X: 7, Y: -8}, {X: 7, Y: 0}, {X: 3, Y: 0},
				},
				Neighbors: []Neighbor{PortalTo(3), Solid(), PortalTo(0), Solid()},
				WallColor: color.RGBA{R: 0x5f, G: 0x66, B: 0x72, A: 0xff},
			},
			{
				// East chamber, floor raised by a step.
				Floor: 0.8, Ceil: 5.5,
				Boundary: []geom.Point{
					{X: 10, Y: 0}, {X: 16, Y: 2}, {X: 16, Y: 8}, {X: 10, Y: 10},
				},
				Neighbors: []Neighbor{Solid(), Solid(), Solid(), PortalTo(0)},
				WallColor: color.RGBA{R: 0x7d, G: 0x5a, B: 0x44, A: 0xff},
			},
			{
				// Sunken cistern past the corridor.
				Floor: -1.2, Ceil: 4,
				Boundary: []geom.Point{
					{X: 1, Y: -14}, {X: 9, Y: -14}, {X: 7, Y: -8}, {X: 3, Y: -8},
				},
				Neighbors: []Neighbor{Solid(), Solid(), PortalTo(1), Solid()},
				WallColor: color.RGBA{R: 0x4f, G: 0x6b, B: 0x73, A: 0xff},
			},
			{
				// South vault, barely above eye height.
				Floor: 0, Ceil: 2.6,
				Boundary: []geom.Point{
					{X: 2, Y: 10}, {X: 6, Y: 10}, {X: 6, Y: 15}, {X: 2, Y: 15},
				},
				Neighbors: []Neighbor{PortalTo(0), Solid(), Solid(), Solid()},
				WallColor: color.RGBA{R: 0x6b, G: 0x60, B: 0x46, A: 0xff},
			},
		},
		Spawn: Spawn{
			Pos:       geom.Point{X: 5, Y: 5},
			Angle:     3 * math.Pi / 2, // facing the corridor
			Sector:    0,
			EyeZ:      2,
			MoveSpeed: 4,
			TurnSpeed: 2.6,
		},
	}
}
