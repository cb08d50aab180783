package path

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/gdsvg/core/geom"
)

func TestLineEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	l := Line{P0: geom.P(0, 0), P1: geom.P(10, 0)}
	assert.Equal(t, geom.P(0, 0), l.Eval(0))
	assert.Equal(t, geom.P(10, 0), l.Eval(1))
	assert.Equal(t, geom.P(5, 0), l.Eval(0.5))
}

func TestQuadBezEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	q := QuadBez{P0: geom.P(0, 0), P1: geom.P(5, 10), P2: geom.P(10, 0)}
	assert.Equal(t, q.P0, q.Eval(0))
	assert.Equal(t, q.P2, q.Eval(1))
	m := q.Eval(0.5) // apex of a symmetric arc
	assert.InDelta(t, 5.0, m.X, 1e-15)
	assert.InDelta(t, 5.0, m.Y, 1e-15)
}

func TestCubicBezEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	c := CubicBez{P0: geom.P(0, 0), P1: geom.P(0, 4), P2: geom.P(6, 4), P3: geom.P(6, 0)}
	assert.Equal(t, c.P0, c.Eval(0))
	assert.Equal(t, c.P3, c.Eval(1))
	m := c.Eval(0.5)
	assert.InDelta(t, 3.0, m.X, 1e-15)
	assert.InDelta(t, 3.0, m.Y, 1e-15)
}

func TestArcEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	a := Arc{ // unit half circle, counter-clockwise
		Center:     geom.P(0, 0),
		Rx:         1,
		Ry:         1,
		StartAngle: 0,
		SweepAngle: math.Pi,
	}
	assert.True(t, a.Eval(0).CloseTo(geom.P(1, 0), 1e-12))
	assert.True(t, a.Eval(0.5).CloseTo(geom.P(0, 1), 1e-12))
	assert.True(t, a.Eval(1).CloseTo(geom.P(-1, 0), 1e-12))
}

func TestArcEvalRotated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	a := Arc{ // x-axis rotated by 90°: ellipse radii swap roles
		Center:     geom.P(2, 0),
		Rx:         2,
		Ry:         1,
		StartAngle: 0,
		SweepAngle: math.Pi / 2,
		XRotation:  math.Pi / 2,
	}
	assert.True(t, a.Eval(0).CloseTo(geom.P(2, 2), 1e-12))
	assert.True(t, a.Eval(1).CloseTo(geom.P(1, 0), 1e-12))
}

func TestPathBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.path")
	defer teardown()
	//
	p := NewPath().
		LineTo(geom.P(0, 0), geom.P(1, 0)).
		QuadTo(geom.P(1, 0), geom.P(2, 1), geom.P(3, 0))
	assert.Equal(t, 2, p.N())
	assert.Equal(t, geom.P(1, 0), p.Segment(0).Eval(1))
	assert.Equal(t, geom.P(1, 0), p.Segment(1).Eval(0))
}
