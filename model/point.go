// Package model holds the plain data types that flow between the core's
// subsystems: parsed road records, geometry segments, lane sections, and
// the output graph (nodes, edges, connections). Nothing in this package
// does discretisation or topology work — see geometry, lanesection,
// topology, edgeemit and flatten for that.
package model

import "math"

// Point is a 2D/3D position in the road's local cartesian frame.
// Z is populated by the Geometry Engine's elevation pass; it is zero
// until then.
type Point struct {
	X, Y, Z float64
}

// Epsilon is the default tolerance used for "almost same position" and
// "almost zero" comparisons across the core.
const Epsilon = 1e-3

// Distance2D returns the planar Euclidean distance between p and q,
// ignoring Z.
func (p Point) Distance2D(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Hypot(dx, dy)
}

// AlmostSame reports whether p and q are within eps of each other in the
// XY plane.
func (p Point) AlmostSame(q Point, eps float64) bool {
	return p.Distance2D(q) <= eps
}

// Add returns p+q component-wise.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p-q component-wise.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by k in all three components.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k, p.Z * k}
}

// Heading2D returns the direction from p to q in radians, as returned by
// math.Atan2.
func (p Point) Heading2D(q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Polyline is an ordered sequence of points describing a road's
// discretised reference (or lane) line.
type Polyline []Point

// Length2D returns the sum of planar segment lengths along the polyline.
func (pl Polyline) Length2D() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i-1].Distance2D(pl[i])
	}
	return total
}

// BoundingBox returns the axis-aligned XY bounding box of the polyline.
// ok is false for an empty polyline.
func (pl Polyline) BoundingBox() (box BBox, ok bool) {
	if len(pl) == 0 {
		return BBox{}, false
	}
	box = BBox{MinX: pl[0].X, MaxX: pl[0].X, MinY: pl[0].Y, MaxY: pl[0].Y}
	for _, p := range pl[1:] {
		box.MinX = math.Min(box.MinX, p.X)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxY = math.Max(box.MaxY, p.Y)
	}
	return box, true
}

// BBox is an axis-aligned 2D bounding box.
type BBox struct {
	MinX, MaxX, MinY, MaxY float64
}

// Union merges b into a and returns the combined box.
func (a BBox) Union(b BBox) BBox {
	return BBox{
		MinX: math.Min(a.MinX, b.MinX),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// Center returns the midpoint of the box.
func (a BBox) Center() Point {
	return Point{X: (a.MinX + a.MaxX) / 2, Y: (a.MinY + a.MaxY) / 2}
}

// Reversed returns a new polyline with points in reverse order.
func (pl Polyline) Reversed() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}
