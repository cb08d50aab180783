package flatten

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
)

// interval is a pending parameter range during adaptive subdivision.
type interval struct {
	t0, t1 float64
}

// AdaptiveSegment subdivides a segment until every accepted chord
// deviates from the curve by no more than maxError, measured as the
// perpendicular distance of the curve's parametric midpoint from the
// chord. Flat regions get few points, high-curvature regions get many.
//
// The error measure is a single-sample estimate: a curve whose error is
// concentrated away from the parametric midpoint may be under-subdivided.
// This matches the established behavior of the conversion pipeline.
//
// Subdivision uses an explicit work stack of parameter intervals rather
// than recursion. maxPoints caps the number of emitted vertices; a
// breach returns a budget error (core.ELIMIT) and no points.
func AdaptiveSegment(seg path.Segment, maxError float64, maxPoints int) ([]geom.Point, error) {
	var pts []geom.Point

	stack := arraystack.New()
	stack.Push(interval{0, 1})
	pts = append(pts, seg.Eval(0))

	for !stack.Empty() {
		v, _ := stack.Pop()
		iv := v.(interval)
		p0 := seg.Eval(iv.t0)
		p1 := seg.Eval(iv.t1)
		tm := 0.5 * (iv.t0 + iv.t1)

		accept := false
		chord := p1.Sub(p0)
		chordLen := p0.Dist(p1)
		if chordLen == 0 {
			// degenerate segment, terminate this branch
			accept = true
		} else if tm <= iv.t0 || tm >= iv.t1 {
			// interval no longer splittable in float64
			accept = true
		} else {
			pm := seg.Eval(tm)
			err := abs(chord.Cross(pm.Sub(p0))) / chordLen
			accept = err <= maxError
		}
		if accept {
			if len(pts) >= maxPoints {
				tracer().Errorf("adaptive subdivision exceeds budget of %d points", maxPoints)
				return nil, core.Error(core.ELIMIT,
					"adaptive subdivision exceeds budget of %d points; raise max-error or the budget",
					maxPoints)
			}
			pts = append(pts, p1)
			continue
		}
		// left interval is popped first, keeping points in parameter order
		stack.Push(interval{tm, iv.t1})
		stack.Push(interval{iv.t0, tm})
	}
	tracer().Debugf("segment flattened adaptively into %d points", len(pts))
	return pts, nil
}

func abs(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
