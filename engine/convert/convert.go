// Package convert wires the conversion pipeline together: paths are
// flattened into polygons, their combined bounding box is aggregated, a
// center/scale/flip transform is derived and applied, and the result is
// emitted to an output sink. Data flows strictly forward; the bounding
// box is the synchronization point between flattening and transform, as
// the scale factor is global over all polygons.
package convert

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gdsvg/backend"
	"github.com/npillmayer/gdsvg/core/path"
	"github.com/npillmayer/gdsvg/engine/flatten"
	"github.com/npillmayer/gdsvg/engine/polygon"
)

// tracer traces with key 'gdsvg.convert'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.convert")
}

// Item pairs one path with the layer tag its polygon will carry.
type Item struct {
	Path  *path.Path
	Layer int
}

// Convert runs the full pipeline for a set of paths, all tagged with
// opts.Layer, and submits the transformed polygons to sink. It returns
// the number of polygons emitted. n == 0 with a nil error is the
// empty-geometry condition: nothing was submitted to the sink, and
// callers should treat this as "no output to produce", not as a
// failure.
//
// Configuration errors are reported before any polygon is emitted.
// Convert does not close the sink.
func Convert(paths []*path.Path, opts Options, sink backend.Sink) (n int, err error) {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Path: p, Layer: opts.Layer}
	}
	return ConvertItems(items, opts, sink)
}

// ConvertItems is Convert with a per-item layer tag, as produced by the
// SVG front-end. Items without a layer override carry opts.Layer.
func ConvertItems(items []Item, opts Options, sink backend.Sink) (n int, err error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	paths := make([]*path.Path, len(items))
	for i := range items {
		paths[i] = items[i].Path
	}
	polys, err := flatten.Paths(paths, opts.Layer, opts.Flatten)
	if err != nil {
		return 0, err
	}
	for i := range polys {
		polys[i].Layer = items[i].Layer
	}
	box, ok := polygon.BoundingBox(polys)
	if !ok {
		tracer().Infof("no geometry found, nothing to emit")
		return 0, nil
	}
	tracer().Infof("%d polygons, bounding box %s", len(polys), box)
	tr := polygon.FitWidth(box, opts.TargetWidth, opts.FlipY)
	polys = tr.All(polys)
	for _, pg := range polys {
		if pg.IsEmpty() {
			continue
		}
		if err := sink.Polygon(pg.Points, pg.Layer); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
