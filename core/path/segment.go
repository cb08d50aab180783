// Package path holds the parametric curve segments which gdsvg flattens
// into polygons: lines, quadratic and cubic Bézier segments, and
// elliptical arcs. All of them satisfy a single capability contract,
// evaluation at a parameter t ∈ [0,1].
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
package path

import (
	"math"

	"github.com/npillmayer/gdsvg/core/geom"
)

// Segment is the capability contract every curve primitive satisfies:
// evaluation at a scalar parameter. Implementations are immutable value
// types, constructed by an input front-end and read by the flatteners.
type Segment interface {
	// Eval evaluates the segment at parameter t, t ∈ [0,1].
	Eval(t float64) geom.Point
}

// --- Line ------------------------------------------------------------

// Line is a straight segment between two points.
type Line struct {
	P0 geom.Point
	P1 geom.Point
}

var _ Segment = Line{}

// Eval is part of interface Segment.
func (l Line) Eval(t float64) geom.Point {
	return l.P0.Lerp(l.P1, t)
}

// --- Quadratic Bézier ------------------------------------------------

// QuadBez is a quadratic Bézier segment with one control point.
type QuadBez struct {
	P0 geom.Point
	P1 geom.Point
	P2 geom.Point
}

var _ Segment = QuadBez{}

// Eval is part of interface Segment.
// Bernstein form: (1−t)²·P0 + 2(1−t)t·P1 + t²·P2.
func (q QuadBez) Eval(t float64) geom.Point {
	mt := 1 - t
	a := q.P0.Scale(mt * mt)
	b := q.P1.Scale(2 * mt * t)
	c := q.P2.Scale(t * t)
	return a.Add(b).Add(c)
}

// --- Cubic Bézier ----------------------------------------------------

// CubicBez is a cubic Bézier segment with two control points.
type CubicBez struct {
	P0 geom.Point
	P1 geom.Point
	P2 geom.Point
	P3 geom.Point
}

var _ Segment = CubicBez{}

// Eval is part of interface Segment.
func (c CubicBez) Eval(t float64) geom.Point {
	mt := 1 - t
	a := c.P0.Scale(mt * mt * mt)
	b := c.P1.Scale(3 * mt * mt * t)
	d := c.P2.Scale(3 * mt * t * t)
	e := c.P3.Scale(t * t * t)
	return a.Add(b).Add(d).Add(e)
}

// --- Elliptical arc --------------------------------------------------

// Arc is an elliptical arc in center parameterization. Angles are in
// radians; SweepAngle may be negative for clockwise arcs.
type Arc struct {
	Center     geom.Point
	Rx, Ry     float64
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

var _ Segment = Arc{}

// Eval is part of interface Segment.
func (a Arc) Eval(t float64) geom.Point {
	angle := a.StartAngle + t*a.SweepAngle
	return a.Center.Add(sampleEllipse(a.Rx, a.Ry, a.XRotation, angle))
}

// sampleEllipse returns the point on an origin-centered ellipse with the
// given radii and axis rotation, at the given parametric angle.
func sampleEllipse(rx, ry, xRotation, angle float64) geom.Point {
	sin, cos := math.Sincos(angle)
	return rotatePt(geom.P(rx*cos, ry*sin), xRotation)
}

// rotatePt rotates p about the origin by angle radians.
func rotatePt(p geom.Point, angle float64) geom.Point {
	sin, cos := math.Sincos(angle)
	return geom.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}
