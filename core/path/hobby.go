package path

import (
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/arithm/jhobby"

	"github.com/npillmayer/gdsvg/core/geom"
)

// FromHobby converts a solved Hobby spline into a Path of cubic Bézier
// segments. Callers will usually have obtained controls from
// jhobby.FindHobbyControls. Cyclic paths are closed with a final segment
// back to knot 0.
func FromHobby(hp jhobby.HobbyPath, controls jhobby.SplineControls) *Path {
	p := NewPath()
	if hp == nil || hp.N() == 0 {
		return p
	}
	n := hp.N()
	if hp.IsCycle() {
		n++
	}
	tracer().Debugf("spline with %d knots, cycle=%v", hp.N(), hp.IsCycle())
	for k := 1; k < n; k++ {
		from := pairToPoint(hp.Z(k - 1))
		to := pairToPoint(hp.Z(k % hp.N()))
		c1 := pairToPoint(controls.PostControl(k - 1))
		c2 := pairToPoint(controls.PreControl(k % hp.N()))
		p.CubicTo(from, c1, c2, to)
	}
	return p
}

func pairToPoint(pr arithm.Pair) geom.Point {
	c := pr.C()
	return geom.P(real(c), imag(c))
}
