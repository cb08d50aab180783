// Package svg reads SVG documents and converts their drawable elements
// into curve-segment paths for the flattening pipeline. Nested group
// transforms are expected to have been flattened upstream (e.g. with a
// picosvg-style preprocessor); this reader only descends containers.
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
package svg

import (
	"io"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/path"
)

// tracer traces with key 'gdsvg.input'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.input")
}

// Drawable is one visible SVG element, converted to segment form.
type Drawable struct {
	Path  *path.Path
	Style Style
}

// drawableSel matches every SVG element kind the reader understands.
var drawableSel = cascadia.MustCompile("path, rect, circle, ellipse, line, polyline, polygon")

// ReadDocument parses an SVG document and returns its visible drawable
// elements in document order. Elements styled invisible (fill and
// stroke both 'none') are skipped. The reader is charset-aware.
func ReadDocument(r io.Reader) ([]Drawable, error) {
	cr, err := charset.NewReader(r, "image/svg+xml")
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode SVG input")
	}
	root, err := html.Parse(cr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse SVG input")
	}
	var drawables []Drawable
	for _, n := range drawableSel.MatchAll(root) {
		style := parseStyle(n)
		if style.Invisible() {
			tracer().Debugf("skipping invisible <%s>", n.Data)
			continue
		}
		p, err := elementPath(n)
		if err != nil {
			return nil, err
		}
		if p == nil || p.N() == 0 {
			continue
		}
		drawables = append(drawables, Drawable{Path: p, Style: style})
	}
	tracer().Infof("SVG document contains %d drawable elements", len(drawables))
	return drawables, nil
}

// elementPath converts one drawable element into a path.
func elementPath(n *html.Node) (*path.Path, error) {
	switch n.Data {
	case "path":
		d := attr(n, "d")
		if d == "" {
			return nil, nil
		}
		return ParsePathData(d)
	case "rect":
		return rectPath(n)
	case "circle":
		return circlePath(n)
	case "ellipse":
		return ellipsePath(n)
	case "line":
		return linePath(n)
	case "polyline":
		return polyPath(n, false)
	case "polygon":
		return polyPath(n, true)
	}
	return nil, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
