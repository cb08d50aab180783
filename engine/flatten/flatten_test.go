package flatten

import (
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
)

func TestOptionsValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())
	//
	opts.Steps = 0
	err := opts.Validate()
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	opts = DefaultOptions()
	opts.Method = MethodAdaptive
	opts.MaxError = -1
	err = opts.Validate()
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestParseMethod(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	m, err := ParseMethod("adaptive")
	assert.NoError(t, err)
	assert.Equal(t, MethodAdaptive, m)
	m, err = ParseMethod("")
	assert.NoError(t, err)
	assert.Equal(t, MethodFixed, m)
	_, err = ParseMethod("hexagonal")
	assert.Error(t, err)
}

func TestFixedSingleLineStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// a single line with steps=1 yields exactly its two endpoints
	p := path.NewPath().LineTo(geom.P(0, 0), geom.P(10, 0))
	opts := DefaultOptions()
	opts.Steps = 1
	poly, err := Path(p, 0, opts)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{geom.P(0, 0), geom.P(10, 0)}, poly.Points)
}

func TestFixedSampleCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	seg := path.QuadBez{P0: geom.P(0, 0), P1: geom.P(5, 10), P2: geom.P(10, 0)}
	pts := FixedSegment(seg, 10)
	assert.Len(t, pts, 11)
	assert.Equal(t, seg.Eval(0), pts[0])
	assert.Equal(t, seg.Eval(1), pts[10])
}

// referenceSubdivide is the direct recursive formulation of adaptive
// subdivision. AdaptiveSegment uses an explicit work stack instead and
// must produce the identical point sequence.
func referenceSubdivide(seg path.Segment, t0, t1, maxError float64) []geom.Point {
	p0 := seg.Eval(t0)
	pm := seg.Eval(0.5 * (t0 + t1))
	p1 := seg.Eval(t1)
	chordLen := p0.Dist(p1)
	if chordLen == 0 {
		return []geom.Point{p0, p1}
	}
	err := abs(p1.Sub(p0).Cross(pm.Sub(p0))) / chordLen
	if err <= maxError {
		return []geom.Point{p0, p1}
	}
	tm := 0.5 * (t0 + t1)
	left := referenceSubdivide(seg, t0, tm, maxError)
	right := referenceSubdivide(seg, tm, t1, maxError)
	return append(left[:len(left)-1:len(left)-1], right...)
}

func TestAdaptiveMatchesRecursiveReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	rng := rand.New(rand.NewSource(42))
	randPt := func() geom.Point {
		return geom.P(rng.Float64()*100-50, rng.Float64()*100-50)
	}
	tolerances := []float64{1, 0.1, 0.01}
	for i := 0; i < 25; i++ {
		var seg path.Segment
		if i%2 == 0 {
			seg = path.QuadBez{P0: randPt(), P1: randPt(), P2: randPt()}
		} else {
			seg = path.CubicBez{P0: randPt(), P1: randPt(), P2: randPt(), P3: randPt()}
		}
		for _, eps := range tolerances {
			want := referenceSubdivide(seg, 0, 1, eps)
			got, err := AdaptiveSegment(seg, eps, DefaultMaxPoints)
			require.NoError(t, err)
			assert.Equal(t, want, got, "segment %d, eps=%g", i, eps)
		}
	}
}

// acceptedParams returns the parameter values at which subdivision
// settles, aligned one-to-one with AdaptiveSegment's output points.
func acceptedParams(seg path.Segment, t0, t1, maxError float64) []float64 {
	p0 := seg.Eval(t0)
	pm := seg.Eval(0.5 * (t0 + t1))
	p1 := seg.Eval(t1)
	chordLen := p0.Dist(p1)
	if chordLen == 0 || abs(p1.Sub(p0).Cross(pm.Sub(p0)))/chordLen <= maxError {
		return []float64{t0, t1}
	}
	tm := 0.5 * (t0 + t1)
	left := acceptedParams(seg, t0, tm, maxError)
	right := acceptedParams(seg, tm, t1, maxError)
	return append(left[:len(left)-1:len(left)-1], right...)
}

func TestAdaptiveChordErrorBound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// for every accepted chord, the curve's parametric midpoint deviates
	// from the chord's line by no more than the tolerance; the distance
	// here is computed by projection, independent of the subdivision's
	// cross-product formula
	rng := rand.New(rand.NewSource(7))
	randPt := func() geom.Point {
		return geom.P(rng.Float64()*100-50, rng.Float64()*100-50)
	}
	for i := 0; i < 25; i++ {
		var seg path.Segment
		if i%2 == 0 {
			seg = path.QuadBez{P0: randPt(), P1: randPt(), P2: randPt()}
		} else {
			seg = path.CubicBez{P0: randPt(), P1: randPt(), P2: randPt(), P3: randPt()}
		}
		for _, eps := range []float64{1, 0.1, 0.01} {
			pts, err := AdaptiveSegment(seg, eps, DefaultMaxPoints)
			require.NoError(t, err)
			ts := acceptedParams(seg, 0, 1, eps)
			require.Equal(t, len(pts), len(ts), "segment %d, eps=%g", i, eps)
			require.Equal(t, seg.Eval(ts[len(ts)-1]), pts[len(pts)-1])
			for k := 0; k+1 < len(ts); k++ {
				p0, p1 := pts[k], pts[k+1]
				require.Equal(t, seg.Eval(ts[k]), p0)
				pm := seg.Eval(0.5 * (ts[k] + ts[k+1]))
				d := p1.Sub(p0)
				den := d.X*d.X + d.Y*d.Y
				if den == 0 {
					continue
				}
				v := pm.Sub(p0)
				foot := p0.Add(d.Scale((v.X*d.X + v.Y*d.Y) / den))
				assert.LessOrEqual(t, pm.Dist(foot), eps+1e-9,
					"segment %d, eps=%g, chord %d", i, eps, k)
			}
		}
	}
}

func TestAdaptiveMonotonicRefinement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// decreasing the tolerance never decreases the point count
	seg := path.QuadBez{P0: geom.P(0, 0), P1: geom.P(50, 100), P2: geom.P(100, 0)}
	prev := 0
	for _, eps := range []float64{1.0, 0.1, 0.01, 0.001} {
		pts, err := AdaptiveSegment(seg, eps, DefaultMaxPoints)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(pts), prev, "eps=%g", eps)
		prev = len(pts)
	}
	assert.Greater(t, prev, 2) // eps=0.001 must actually subdivide
}

func TestAdaptiveDegenerateSegment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// a segment collapsing to a point terminates without error
	seg := path.Line{P0: geom.P(3, 3), P1: geom.P(3, 3)}
	pts, err := AdaptiveSegment(seg, 0.01, DefaultMaxPoints)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{geom.P(3, 3), geom.P(3, 3)}, pts)
}

func TestAdaptivePointBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	seg := path.CubicBez{P0: geom.P(0, 0), P1: geom.P(0, 1000), P2: geom.P(1000, 1000), P3: geom.P(1000, 0)}
	_, err := AdaptiveSegment(seg, 1e-9, 16)
	require.Error(t, err)
	assert.Equal(t, core.ELIMIT, core.Code(err))
}

func TestAssembleJoinDeduplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	a := []geom.Point{geom.P(0, 0), geom.P(1, 0)}
	b := []geom.Point{geom.P(1, 0), geom.P(1, 1)}
	poly := Assemble([][]geom.Point{a, b}, 0)
	assert.Equal(t, []geom.Point{geom.P(0, 0), geom.P(1, 0), geom.P(1, 1)}, poly.Points)
}

func TestAssembleKeepsDisjointSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// segments that do not share an endpoint are appended unchanged
	a := []geom.Point{geom.P(0, 0), geom.P(1, 0)}
	b := []geom.Point{geom.P(2, 0), geom.P(3, 0)}
	poly := Assemble([][]geom.Point{a, b}, 2)
	assert.Len(t, poly.Points, 4)
	assert.Equal(t, 2, poly.Layer)
}

func TestPathJoinDeduplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	p := path.NewPath().
		LineTo(geom.P(0, 0), geom.P(1, 0)).
		LineTo(geom.P(1, 0), geom.P(1, 1))
	opts := DefaultOptions()
	opts.Steps = 1
	poly, err := Path(p, 0, opts)
	require.NoError(t, err)
	// the shared endpoint (1,0) appears exactly once
	assert.Equal(t, []geom.Point{geom.P(0, 0), geom.P(1, 0), geom.P(1, 1)}, poly.Points)
}

func TestPathsPreserveOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	var paths []*path.Path
	for i := 0; i < 20; i++ { // enough paths to trigger the parallel branch
		x := float64(i * 10)
		paths = append(paths, path.NewPath().LineTo(geom.P(x, 0), geom.P(x+1, 0)))
	}
	opts := DefaultOptions()
	opts.Steps = 1
	polys, err := Paths(paths, 0, opts)
	require.NoError(t, err)
	require.Len(t, polys, 20)
	for i, poly := range polys {
		assert.Equal(t, float64(i*10), poly.Points[0].X)
	}
}

func TestPathsKeepAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.flatten")
	defer teardown()
	//
	// one polygon per path, empty paths yield empty polygons
	paths := []*path.Path{
		path.NewPath(), // no segments
		path.NewPath().LineTo(geom.P(0, 0), geom.P(1, 1)),
	}
	polys, err := Paths(paths, 0, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.True(t, polys[0].IsEmpty())
	assert.False(t, polys[1].IsEmpty())
}
