// Package polygon holds the flat geometry produced by the flattening
// stage: ordered vertex sequences with a layer tag, their combined
// bounding box, and the scale/center/flip transform applied before
// emission.
//
/*
BSD License

Copyright (c) 2021–22, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package polygon

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gdsvg/core/geom"
)

// tracer traces with key 'gdsvg.polygon'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.polygon")
}

// Polygon is an ordered vertex sequence plus a layer tag for the output
// sink. Whether the sequence is to be read as closed is up to the sink;
// gdsvg never inserts a closing vertex itself.
type Polygon struct {
	Points []geom.Point
	Layer  int
}

// IsEmpty is true for polygons without any vertex.
func (pg Polygon) IsEmpty() bool {
	return len(pg.Points) == 0
}

// BoundingBox aggregates the extent of a set of polygons. The combined
// box has to cover every point of every polygon, as the subsequent
// transform derives a single global scale factor from it.
//
// ok is false if the polygon set contributes no point at all. This is
// the empty-geometry condition, an expected outcome for some inputs, and
// deliberately not an error.
func BoundingBox(polys []Polygon) (box geom.Rect, ok bool) {
	box = geom.EmptyRect()
	for _, pg := range polys {
		for _, p := range pg.Points {
			box = box.UnionPoint(p)
		}
	}
	if box.IsEmpty() {
		tracer().Infof("polygon set is empty, no bounding box")
		return box, false
	}
	tracer().Debugf("bounding box of %d polygons is %s", len(polys), box)
	return box, true
}
