package flatten

import (
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/engine/polygon"
)

// Assemble folds per-segment point lists into a single polygon. When
// segment i ends where segment i+1 begins (within geom.JoinEpsilon in
// both coordinates), the duplicated join point is elided, so segment
// boundaries never introduce back-to-back duplicate vertices. Genuinely
// coincident geometry elsewhere is preserved.
//
// The fold carries the last emitted point as explicit state; the first
// non-empty list is appended unconditionally.
func Assemble(segPoints [][]geom.Point, layer int) polygon.Polygon {
	var pts []geom.Point
	var last geom.Point
	have := false
	for _, sp := range segPoints {
		if len(sp) == 0 {
			continue
		}
		if have && sp[0].CloseTo(last, geom.JoinEpsilon) {
			sp = sp[1:]
		}
		pts = append(pts, sp...)
		if len(pts) > 0 {
			last = pts[len(pts)-1]
			have = true
		}
	}
	return polygon.Polygon{Points: pts, Layer: layer}
}
