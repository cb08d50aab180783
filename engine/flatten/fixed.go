package flatten

import (
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
)

// FixedSegment samples a segment at steps+1 uniform parameters t = i/steps,
// i ∈ [0, steps]. Cost is O(steps), independent of the segment's
// curvature. Both endpoints are included, so adjacent segments repeat
// their join point; the assembler elides the duplicate.
func FixedSegment(seg path.Segment, steps int) []geom.Point {
	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, seg.Eval(t))
	}
	return pts
}
