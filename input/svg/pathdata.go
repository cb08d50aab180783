package svg

import (
	"math"
	"strconv"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/geom"
	"github.com/npillmayer/gdsvg/core/path"
)

// ParsePathData parses the value of an SVG path 'd' attribute into a
// Path of curve segments. All SVG path commands are supported:
// M/m, L/l, H/h, V/v, C/c, S/s, Q/q, T/t, A/a and Z/z, with repeated
// coordinate groups and the implicit line-to after a move-to. A 'd'
// value with several subpaths yields a single Path; the flattening
// stage preserves the gap, as disjoint segment boundaries are not join
// points.
func ParsePathData(d string) (*path.Path, error) {
	sc := &scanner{src: d}
	p := path.NewPath()

	var current, subpathStart geom.Point
	var prevCubicCtrl, prevQuadCtrl geom.Point
	var prevCmd byte
	havePoint := false

	for {
		cmd, ok := sc.command()
		if !ok {
			break
		}
		rel := cmd >= 'a' // lowercase commands use relative coordinates
		upper := cmd
		if rel {
			upper = cmd - 'a' + 'A'
		}
		if !havePoint && upper != 'M' {
			return nil, core.Error(core.EINVALID, "path data must start with a move-to, got '%c'", cmd)
		}
		switch upper {
		case 'M':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			if rel && havePoint {
				pt = current.Add(pt)
			}
			current = pt
			subpathStart = pt
			havePoint = true
			// subsequent pairs are implicit line-tos
			for sc.hasNumber() {
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					to = current.Add(to)
				}
				p.LineTo(current, to)
				current = to
			}
		case 'L':
			for {
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					to = current.Add(to)
				}
				p.LineTo(current, to)
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'H':
			for {
				x, err := sc.number()
				if err != nil {
					return nil, err
				}
				to := geom.P(x, current.Y)
				if rel {
					to.X += current.X
				}
				p.LineTo(current, to)
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'V':
			for {
				y, err := sc.number()
				if err != nil {
					return nil, err
				}
				to := geom.P(current.X, y)
				if rel {
					to.Y += current.Y
				}
				p.LineTo(current, to)
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'C':
			for {
				c1, err := sc.point()
				if err != nil {
					return nil, err
				}
				c2, err := sc.point()
				if err != nil {
					return nil, err
				}
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					c1 = current.Add(c1)
					c2 = current.Add(c2)
					to = current.Add(to)
				}
				p.CubicTo(current, c1, c2, to)
				prevCubicCtrl = c2
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'S':
			for {
				c2, err := sc.point()
				if err != nil {
					return nil, err
				}
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					c2 = current.Add(c2)
					to = current.Add(to)
				}
				c1 := current // no reflectable control: first control is current point
				if prevCmd == 'C' || prevCmd == 'S' {
					c1 = current.Scale(2).Sub(prevCubicCtrl)
				}
				p.CubicTo(current, c1, c2, to)
				prevCubicCtrl = c2
				current = to
				prevCmd = upper // later pairs in this group reflect, too
				if !sc.hasNumber() {
					break
				}
			}
		case 'Q':
			for {
				c1, err := sc.point()
				if err != nil {
					return nil, err
				}
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					c1 = current.Add(c1)
					to = current.Add(to)
				}
				p.QuadTo(current, c1, to)
				prevQuadCtrl = c1
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'T':
			for {
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					to = current.Add(to)
				}
				c1 := current
				if prevCmd == 'Q' || prevCmd == 'T' {
					c1 = current.Scale(2).Sub(prevQuadCtrl)
				}
				p.QuadTo(current, c1, to)
				prevQuadCtrl = c1
				current = to
				prevCmd = upper // later pairs in this group reflect, too
				if !sc.hasNumber() {
					break
				}
			}
		case 'A':
			for {
				rx, err := sc.number()
				if err != nil {
					return nil, err
				}
				ry, err := sc.number()
				if err != nil {
					return nil, err
				}
				rot, err := sc.number()
				if err != nil {
					return nil, err
				}
				large, err := sc.flag()
				if err != nil {
					return nil, err
				}
				sweep, err := sc.flag()
				if err != nil {
					return nil, err
				}
				to, err := sc.point()
				if err != nil {
					return nil, err
				}
				if rel {
					to = current.Add(to)
				}
				appendArc(p, current, rx, ry, rot, large, sweep, to)
				current = to
				if !sc.hasNumber() {
					break
				}
			}
		case 'Z':
			if current != subpathStart {
				p.LineTo(current, subpathStart)
			}
			current = subpathStart
		default:
			return nil, core.Error(core.EINVALID, "unknown path command '%c'", cmd)
		}
		prevCmd = upper
	}
	if sc.pos < len(sc.src) {
		return nil, core.Error(core.EINVALID, "unexpected character '%c' in path data at position %d",
			sc.src[sc.pos], sc.pos)
	}
	return p, nil
}

// appendArc converts an SVG endpoint-parameterized arc into center
// parameterization and appends it, following the W3C implementation
// notes (F.6.5). Zero radii degrade to a straight line, out-of-range
// radii are scaled up, both per the SVG error-handling rules.
func appendArc(p *path.Path, from geom.Point, rx, ry, rotDeg float64, large, sweep bool, to geom.Point) {
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(from, to)
		return
	}
	rot := rotDeg * math.Pi / 180

	sin, cos := math.Sincos(rot)
	dx2 := (from.X - to.X) / 2
	dy2 := (from.Y - to.Y) / 2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	// scale radii up if no ellipse can reach the endpoint
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0 {
		sq = 0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cos*cxp - sin*cyp + (from.X+to.X)/2
	cy := sin*cxp + cos*cyp + (from.Y+to.Y)/2

	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(clamp1(ux / math.Hypot(ux, uy)))
	if uy < 0 {
		theta = -theta
	}
	delta := math.Acos(clamp1((ux*vx + uy*vy) / (math.Hypot(ux, uy) * math.Hypot(vx, vy))))
	if ux*vy-uy*vx < 0 {
		delta = -delta
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	p.AppendSegment(path.Arc{
		Center:     geom.P(cx, cy),
		Rx:         rx,
		Ry:         ry,
		StartAngle: theta,
		SweepAngle: delta,
		XRotation:  rot,
	})
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// --- path data scanner ------------------------------------------------

type scanner struct {
	src string
	pos int
}

func (sc *scanner) skipSeparators() {
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == ',' {
			sc.pos++
			continue
		}
		return
	}
}

// command returns the next command letter, if any.
func (sc *scanner) command() (byte, bool) {
	sc.skipSeparators()
	if sc.pos >= len(sc.src) {
		return 0, false
	}
	c := sc.src[sc.pos]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		sc.pos++
		return c, true
	}
	return 0, false
}

// hasNumber reports whether a coordinate follows before the next
// command letter.
func (sc *scanner) hasNumber() bool {
	sc.skipSeparators()
	if sc.pos >= len(sc.src) {
		return false
	}
	c := sc.src[sc.pos]
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *scanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	if sc.pos < len(sc.src) && (sc.src[sc.pos] == '+' || sc.src[sc.pos] == '-') {
		sc.pos++
	}
	dot := false
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		if c >= '0' && c <= '9' {
			sc.pos++
			continue
		}
		if c == '.' && !dot {
			dot = true
			sc.pos++
			continue
		}
		break
	}
	// exponent part
	if sc.pos < len(sc.src) && (sc.src[sc.pos] == 'e' || sc.src[sc.pos] == 'E') {
		mark := sc.pos
		sc.pos++
		if sc.pos < len(sc.src) && (sc.src[sc.pos] == '+' || sc.src[sc.pos] == '-') {
			sc.pos++
		}
		digits := false
		for sc.pos < len(sc.src) && sc.src[sc.pos] >= '0' && sc.src[sc.pos] <= '9' {
			digits = true
			sc.pos++
		}
		if !digits {
			sc.pos = mark
		}
	}
	if sc.pos == start {
		return 0, core.Error(core.EINVALID, "expected a number in path data at position %d", sc.pos)
	}
	v, err := strconv.ParseFloat(sc.src[start:sc.pos], 64)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "malformed number in path data: '%s'", sc.src[start:sc.pos])
	}
	return v, nil
}

// flag reads an arc flag, which may be crammed against the following
// number ("11" is two flags).
func (sc *scanner) flag() (bool, error) {
	sc.skipSeparators()
	if sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case '0':
			sc.pos++
			return false, nil
		case '1':
			sc.pos++
			return true, nil
		}
	}
	return false, core.Error(core.EINVALID, "expected an arc flag in path data at position %d", sc.pos)
}

func (sc *scanner) point() (geom.Point, error) {
	x, err := sc.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.P(x, y), nil
}
