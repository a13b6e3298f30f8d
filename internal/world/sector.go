// Package world defines the sector graph: convex polygonal rooms joined
// through portal edges, plus the JSON codec and the load-time validation
// that keeps the graph consistent before the renderer or the movement
// controller ever see it.
package world

import (
	"image/color"

	"chosenoffset.com/undercroft/internal/geom"
)

// Neighbor identifies what lies beyond a sector edge: a solid wall or a
// portal into another sector. The zero value is a solid wall. The file
// format's -1 sentinel never leaves the codec; in memory the distinction is
// carried by this type.
type Neighbor struct {
	sector int
	portal bool
}

// Solid returns the neighbor value for a plain wall edge.
func Solid() Neighbor { return Neighbor{} }

// PortalTo returns the neighbor value for a portal edge into sector i.
func PortalTo(i int) Neighbor { return Neighbor{sector: i, portal: true} }

// Portal returns the destination sector index and whether this edge is a
// portal at all.
func (n Neighbor) Portal() (int, bool) { return n.sector, n.portal }

// IsPortal reports whether the edge leads into another sector.
func (n Neighbor) IsPortal() bool { return n.portal }

// Sector is a convex polygonal room with flat floor and ceiling planes.
// Sectors are immutable once the world is constructed; structural changes
// are an external concern and would swap the whole sector between frames.
type Sector struct {
	Floor float64 // floor plane height (world Z)
	Ceil  float64 // ceiling plane height, always above the floor

	// Boundary vertices in clockwise order as seen on a y-down map
	// (positive shoelace area). Edge i runs from Boundary[i] to
	// Boundary[(i+1) % n]. Consecutive collinear vertices are legal: walls
	// that are part portal, part solid are authored as split edges.
	Boundary []geom.Point

	// Neighbors is index-aligned with Boundary: Neighbors[i] describes the
	// far side of edge i.
	Neighbors []Neighbor

	// WallColor fills this sector's solid wall spans and portal step faces.
	WallColor color.RGBA
}

// Edge returns the endpoints of boundary edge i.
func (s *Sector) Edge(i int) (geom.Point, geom.Point) {
	return s.Boundary[i], s.Boundary[(i+1)%len(s.Boundary)]
}

// Contains tests whether a world-plane point lies inside the sector
// boundary. Boundary points count as inside.
func (s *Sector) Contains(p geom.Point) bool {
	return geom.PointInConvexPolygon(p, s.Boundary)
}
