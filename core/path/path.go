package path

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gdsvg/core/geom"
)

// tracer traces with key 'gdsvg.path'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.path")
}

// Path is one contiguous drawable outline: an ordered sequence of curve
// segments. Paths are built by an input front-end and are read-only for
// the flattening stages.
type Path struct {
	segments []Segment
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// N returns the number of segments of p.
func (p *Path) N() int {
	if p == nil {
		return 0
	}
	return len(p.segments)
}

// Segment returns segment number i, i ∈ [0, N).
func (p *Path) Segment(i int) Segment {
	return p.segments[i]
}

// AppendSegment extends p by an arbitrary segment.
func (p *Path) AppendSegment(seg Segment) *Path {
	p.segments = append(p.segments, seg)
	return p
}

// LineTo extends p by a straight segment from 'from' to 'to'.
func (p *Path) LineTo(from, to geom.Point) *Path {
	return p.AppendSegment(Line{P0: from, P1: to})
}

// QuadTo extends p by a quadratic Bézier segment.
func (p *Path) QuadTo(from, ctrl, to geom.Point) *Path {
	return p.AppendSegment(QuadBez{P0: from, P1: ctrl, P2: to})
}

// CubicTo extends p by a cubic Bézier segment.
func (p *Path) CubicTo(from, ctrl1, ctrl2, to geom.Point) *Path {
	return p.AppendSegment(CubicBez{P0: from, P1: ctrl1, P2: ctrl2, P3: to})
}
