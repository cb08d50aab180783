package svg

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// layerProperty is a gdsvg extension: a CSS property or attribute on a
// drawable element overriding the GDS layer its polygon is written to.
const layerProperty = "gds-layer"

// Style captures the small slice of SVG styling the converter cares
// about: paint visibility and the optional layer override. Inline
// 'style' declarations take precedence over presentation attributes.
type Style struct {
	Fill     string
	Stroke   string
	Layer    int
	HasLayer bool
}

// Invisible reports whether an element paints nothing at all. An
// absent fill defaults to black (visible), an absent stroke to none.
func (st Style) Invisible() bool {
	return st.Fill == "none" && (st.Stroke == "" || st.Stroke == "none")
}

// parseStyle reads fill, stroke and the layer override from an
// element's presentation attributes and its inline style.
func parseStyle(n *html.Node) Style {
	st := Style{
		Fill:   strings.TrimSpace(attr(n, "fill")),
		Stroke: strings.TrimSpace(attr(n, "stroke")),
	}
	if s := attr(n, layerProperty); s != "" {
		if layer, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			st.Layer = layer
			st.HasLayer = true
		}
	}
	if style := attr(n, "style"); style != "" {
		decls, err := parser.ParseDeclarations(style)
		if err != nil {
			tracer().Infof("ignoring malformed style on <%s>: %v", n.Data, err)
			return st
		}
		for _, d := range decls {
			val := strings.TrimSpace(d.Value)
			switch strings.ToLower(strings.TrimSpace(d.Property)) {
			case "fill":
				st.Fill = val
			case "stroke":
				st.Stroke = val
			case layerProperty:
				if layer, err := strconv.Atoi(val); err == nil {
					st.Layer = layer
					st.HasLayer = true
				}
			}
		}
	}
	st.Fill = strings.ToLower(st.Fill)
	st.Stroke = strings.ToLower(st.Stroke)
	return st
}
