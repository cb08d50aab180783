package polygon

import (
	"sync"

	"github.com/npillmayer/gdsvg/core/geom"
)

// Transform is a uniform similarity transform: translate the bounding
// box center to the origin, scale both axes by a single factor, then
// optionally mirror in y. It is a pure point-wise map.
type Transform struct {
	Scale  float64
	Center geom.Point
	FlipY  bool
}

// Identity returns the do-nothing transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// FitWidth derives the transform which centers box at the origin and
// scales the geometry to the given target width. A target width ≤ 0
// means "no scaling". A zero-width box keeps scale 1 as well, so the
// scale factor is never derived from a division by zero.
func FitWidth(box geom.Rect, targetWidth float64, flipY bool) Transform {
	t := Transform{Scale: 1, Center: box.Center(), FlipY: flipY}
	if targetWidth > 0 && box.Width() > 0 {
		t.Scale = targetWidth / box.Width()
	}
	tracer().Debugf("transform: scale=%g center=%s flip=%v", t.Scale, t.Center, t.FlipY)
	return t
}

// Point applies t to a single point.
func (t Transform) Point(p geom.Point) geom.Point {
	x := (p.X - t.Center.X) * t.Scale
	y := (p.Y - t.Center.Y) * t.Scale
	if t.FlipY {
		y = -y
	}
	return geom.Point{X: x, Y: y}
}

// Polygon applies t to every vertex of pg, returning a fresh polygon.
func (t Transform) Polygon(pg Polygon) Polygon {
	out := Polygon{Points: make([]geom.Point, len(pg.Points)), Layer: pg.Layer}
	for i, p := range pg.Points {
		out.Points[i] = t.Point(p)
	}
	return out
}

// Polygons below this vertex total are transformed sequentially.
const parallelThreshold = 4096

// All applies t to a set of polygons. The map has no cross-item
// dependencies, so large sets are distributed over goroutines, one per
// polygon index range, with order preserved.
func (t Transform) All(polys []Polygon) []Polygon {
	total := 0
	for _, pg := range polys {
		total += len(pg.Points)
	}
	out := make([]Polygon, len(polys))
	if total < parallelThreshold || len(polys) < 2 {
		for i, pg := range polys {
			out[i] = t.Polygon(pg)
		}
		return out
	}
	tracer().Debugf("transforming %d points in parallel", total)
	var wg sync.WaitGroup
	for i := range polys {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = t.Polygon(polys[i])
		}(i)
	}
	wg.Wait()
	return out
}
