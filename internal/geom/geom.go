// Package geom provides the 2-D predicates the sector world is built on:
// point containment in convex polygons, segment intersection, and the small
// vector helpers shared by the movement controller and the renderer.
package geom

import "math"

// Point is a position or vector in the 2-D world plane.
// The map convention is y-down: increasing y is "south" on an overhead view.
type Point struct {
	X float64
	Y float64
}

// Cross returns the z component of the cross product (a-o) x (b-o).
// For consecutive boundary vertices o, a, b this is the turn direction at a:
// positive for a clockwise turn on a y-down map.
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// SignedArea returns the shoelace area of a polygon. Positive area means the
// boundary is wound clockwise as seen on a y-down map, which is the winding
// every sector must use.
func SignedArea(boundary []Point) float64 {
	sum := 0.0
	for i := 0; i < len(boundary); i++ {
		a := boundary[i]
		b := boundary[(i+1)%len(boundary)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// PointInConvexPolygon tests whether p lies inside the convex polygon
// described by boundary. Each edge contributes the sign of the cross product
// of the edge direction against the vector from the edge start to p; the
// point is inside when every nonzero sign agrees with the first one. A zero
// cross (p on the edge line) never disagrees, so boundary points count as
// inside.
func PointInConvexPolygon(p Point, boundary []Point) bool {
	n := len(boundary)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := boundary[i]
		b := boundary[(i+1)%n]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// SegmentsIntersect reports whether segment p1-p2 intersects segment p3-p4.
// Standard parametric test: the intersection parameters along both segments
// must lie in [0,1]. Parallel and coincident segments report no intersection.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	denom := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if math.Abs(denom) < 1e-10 {
		return false
	}

	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denom
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / denom

	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// NormalizeAngle wraps an angle in radians into [0, 2*pi).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
