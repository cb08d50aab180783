// Package flatten converts parametric curve segments into polyline
// approximations: either by uniform parameter sampling or by adaptive
// subdivision with a chord-error bound. Per-segment point lists are
// assembled into one polygon per path, with duplicated join points
// elided.
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
package flatten

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
	"github.com/npillmayer/gdsvg/engine/polygon"
)

// tracer traces with key 'gdsvg.flatten'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.flatten")
}

// Path flattens a single path into one polygon, tagging it with the
// given layer. The resulting polygon is either empty (for a path
// without segments) or has at least two vertices.
func Path(p *path.Path, layer int, opts Options) (polygon.Polygon, error) {
	if err := opts.Validate(); err != nil {
		return polygon.Polygon{}, err
	}
	return flattenPath(p, layer, opts)
}

func flattenPath(p *path.Path, layer int, opts Options) (polygon.Polygon, error) {
	segPoints := make([][]geom.Point, 0, p.N())
	for i := 0; i < p.N(); i++ {
		var pts []geom.Point
		var err error
		switch opts.Method {
		case MethodFixed:
			pts = FixedSegment(p.Segment(i), opts.Steps)
		case MethodAdaptive:
			pts, err = AdaptiveSegment(p.Segment(i), opts.MaxError, opts.MaxPoints)
		}
		if err != nil {
			return polygon.Polygon{}, err
		}
		segPoints = append(segPoints, pts)
	}
	return Assemble(segPoints, layer), nil
}

// Paths below this count are flattened sequentially.
const parallelPathThreshold = 8

// Paths flattens a set of paths, all tagged with the same layer.
// Flattening of independent paths has no cross-item dependencies, so
// larger sets are distributed over a bounded number of workers; results
// are collected by index, preserving the input path order. The result
// holds exactly one polygon per input path; a path without segments
// yields an empty polygon.
func Paths(paths []*path.Path, layer int, opts Options) ([]polygon.Polygon, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	polys := make([]polygon.Polygon, len(paths))
	errs := make([]error, len(paths))
	if len(paths) < parallelPathThreshold {
		for i, p := range paths {
			polys[i], errs[i] = flattenPath(p, layer, opts)
		}
	} else {
		tracer().Debugf("flattening %d paths in parallel", len(paths))
		var wg sync.WaitGroup
		sem := make(chan struct{}, 4)
		for i, p := range paths {
			wg.Add(1)
			go func(i int, p *path.Path) {
				defer wg.Done()
				sem <- struct{}{}
				polys[i], errs[i] = flattenPath(p, layer, opts)
				<-sem
			}(i, p)
		}
		wg.Wait()
	}
	for i := range polys {
		if errs[i] != nil {
			return nil, errs[i]
		}
	}
	return polys, nil
}
