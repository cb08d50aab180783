package svg

import (
	"math"
	"strconv"

	"golang.org/x/net/html"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
)

// numAttr reads a float attribute, 0 if absent.
func numAttr(n *html.Node, key string) (float64, error) {
	s := attr(n, key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID,
			"<%s> attribute %s='%s' is not a number", n.Data, key, s)
	}
	return v, nil
}

func numAttrs(n *html.Node, keys ...string) ([]float64, error) {
	vs := make([]float64, len(keys))
	for i, k := range keys {
		v, err := numAttr(n, k)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// rectPath converts a <rect> into four line segments. Rounded corners
// (rx/ry) are not interpreted.
func rectPath(n *html.Node) (*path.Path, error) {
	vs, err := numAttrs(n, "x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	x, y, w, h := vs[0], vs[1], vs[2], vs[3]
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	p := path.NewPath()
	p.LineTo(geom.P(x, y), geom.P(x+w, y))
	p.LineTo(geom.P(x+w, y), geom.P(x+w, y+h))
	p.LineTo(geom.P(x+w, y+h), geom.P(x, y+h))
	p.LineTo(geom.P(x, y+h), geom.P(x, y))
	return p, nil
}

func circlePath(n *html.Node) (*path.Path, error) {
	vs, err := numAttrs(n, "cx", "cy", "r")
	if err != nil {
		return nil, err
	}
	if vs[2] <= 0 {
		return nil, nil
	}
	return fullEllipse(geom.P(vs[0], vs[1]), vs[2], vs[2]), nil
}

func ellipsePath(n *html.Node) (*path.Path, error) {
	vs, err := numAttrs(n, "cx", "cy", "rx", "ry")
	if err != nil {
		return nil, err
	}
	if vs[2] <= 0 || vs[3] <= 0 {
		return nil, nil
	}
	return fullEllipse(geom.P(vs[0], vs[1]), vs[2], vs[3]), nil
}

// fullEllipse builds a closed outline from two half arcs, so that no
// single segment wraps around onto its own start point.
func fullEllipse(center geom.Point, rx, ry float64) *path.Path {
	p := path.NewPath()
	p.AppendSegment(path.Arc{Center: center, Rx: rx, Ry: ry, StartAngle: 0, SweepAngle: math.Pi})
	p.AppendSegment(path.Arc{Center: center, Rx: rx, Ry: ry, StartAngle: math.Pi, SweepAngle: math.Pi})
	return p
}

func linePath(n *html.Node) (*path.Path, error) {
	vs, err := numAttrs(n, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	return path.NewPath().LineTo(geom.P(vs[0], vs[1]), geom.P(vs[2], vs[3])), nil
}

// polyPath converts <polyline> or <polygon> point lists.
func polyPath(n *html.Node, closed bool) (*path.Path, error) {
	pts, err := parsePoints(attr(n, "points"))
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, nil
	}
	p := path.NewPath()
	for i := 1; i < len(pts); i++ {
		p.LineTo(pts[i-1], pts[i])
	}
	if closed && pts[len(pts)-1] != pts[0] {
		p.LineTo(pts[len(pts)-1], pts[0])
	}
	return p, nil
}

// parsePoints parses an SVG 'points' attribute into coordinate pairs.
func parsePoints(s string) ([]geom.Point, error) {
	sc := &scanner{src: s}
	var pts []geom.Point
	for sc.hasNumber() {
		pt, err := sc.point()
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}
