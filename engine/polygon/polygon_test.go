package polygon

import (
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/gdsvg/core/geom"
)

func TestBoundingBoxEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	_, ok := BoundingBox(nil)
	assert.False(t, ok)
	_, ok = BoundingBox([]Polygon{{}, {}})
	assert.False(t, ok)
}

func TestBoundingBoxAgainstNaiveScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	rng := rand.New(rand.NewSource(7))
	polys := make([]Polygon, 5)
	minx, maxx := math.Inf(1), math.Inf(-1)
	miny, maxy := math.Inf(1), math.Inf(-1)
	for i := range polys {
		n := 1 + rng.Intn(20)
		for j := 0; j < n; j++ {
			p := geom.P(rng.Float64()*200-100, rng.Float64()*200-100)
			polys[i].Points = append(polys[i].Points, p)
			minx = math.Min(minx, p.X)
			maxx = math.Max(maxx, p.X)
			miny = math.Min(miny, p.Y)
			maxy = math.Max(maxy, p.Y)
		}
	}
	box, ok := BoundingBox(polys)
	assert.True(t, ok)
	assert.Equal(t, geom.Rect{MinX: minx, MaxX: maxx, MinY: miny, MaxY: maxy}, box)
}

func TestFitWidthScalesAndCenters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	// two polygons, x ∈ [0,10] and x ∈ [5,20]; target width 100
	polys := []Polygon{
		{Points: []geom.Point{geom.P(0, 0), geom.P(10, 2)}},
		{Points: []geom.Point{geom.P(5, -1), geom.P(20, 3)}},
	}
	box, ok := BoundingBox(polys)
	assert.True(t, ok)
	tr := FitWidth(box, 100, false)
	out := tr.All(polys)
	outbox, ok := BoundingBox(out)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, outbox.Width(), 1e-12)
	assert.InDelta(t, 0.0, outbox.Center().X, 1e-12)
	assert.InDelta(t, 0.0, outbox.Center().Y, 1e-12)
}

func TestFitWidthDegenerateBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	// a vertical line has width 0; the scale factor must stay at 1
	box := geom.RectFromPoints(geom.P(3, 0), geom.P(3, 10))
	tr := FitWidth(box, 50, false)
	assert.Equal(t, 1.0, tr.Scale)
}

func TestTransformRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	// target width == original width and no flip keeps the box extent
	polys := []Polygon{
		{Points: []geom.Point{geom.P(2, 3), geom.P(8, 11)}},
	}
	box, _ := BoundingBox(polys)
	tr := FitWidth(box, box.Width(), false)
	assert.Equal(t, 1.0, tr.Scale)
	out := tr.All(polys)
	outbox, _ := BoundingBox(out)
	assert.InDelta(t, box.Width(), outbox.Width(), 1e-12)
	assert.InDelta(t, box.Height(), outbox.Height(), 1e-12)
}

func TestFlipY(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	pg := Polygon{Points: []geom.Point{geom.P(0, 1), geom.P(0, -1)}}
	tr := Transform{Scale: 1, FlipY: true}
	out := tr.Polygon(pg)
	assert.Equal(t, geom.P(0, -1), out.Points[0])
	assert.Equal(t, geom.P(0, 1), out.Points[1])
}

func TestTransformParallelMatchesSequential(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gdsvg.polygon")
	defer teardown()
	//
	rng := rand.New(rand.NewSource(11))
	polys := make([]Polygon, 8)
	for i := range polys {
		for j := 0; j < parallelThreshold/4; j++ {
			polys[i].Points = append(polys[i].Points,
				geom.P(rng.Float64()*100, rng.Float64()*100))
		}
		polys[i].Layer = i
	}
	tr := Transform{Scale: 2, Center: geom.P(50, 50), FlipY: true}
	par := tr.All(polys)
	for i := range polys {
		seq := tr.Polygon(polys[i])
		assert.Equal(t, seq, par[i])
	}
}
