package geom

import "fmt"

// Rect is an axis-aligned rectangle, typically a bounding box.
// A Rect with MaxX < MinX is empty.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// EmptyRect returns the identity element for Union: a rectangle which
// contains no point at all.
func EmptyRect() Rect {
	const inf = 1e308
	return Rect{MinX: inf, MaxX: -inf, MinY: inf, MaxY: -inf}
}

// RectFromPoints returns the smallest rectangle containing p and q.
func RectFromPoints(p, q Point) Rect {
	r := Rect{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
	return r.UnionPoint(q)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g…%g]×[%g…%g]", r.MinX, r.MaxX, r.MinY, r.MaxY)
}

// IsEmpty is true if r contains no point.
func (r Rect) IsEmpty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// Width returns the horizontal extent of r, 0 for empty rectangles.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of r, 0 for empty rectangles.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{0.5 * (r.MinX + r.MaxX), 0.5 * (r.MinY + r.MaxY)}
}

// UnionPoint extends r to contain p.
func (r Rect) UnionPoint(p Point) Rect {
	if p.X < r.MinX {
		r.MinX = p.X
	}
	if p.X > r.MaxX {
		r.MaxX = p.X
	}
	if p.Y < r.MinY {
		r.MinY = p.Y
	}
	if p.Y > r.MaxY {
		r.MaxY = p.Y
	}
	return r
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if s.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return s
	}
	r = r.UnionPoint(Point{s.MinX, s.MinY})
	r = r.UnionPoint(Point{s.MaxX, s.MaxY})
	return r
}
