// Package gds implements a sink for the GDSII stream format. Polygons
// arrive as ordered vertex lists in user units (µm) and are written as
// BOUNDARY elements of a single structure in a single library.
//
// The stream format is a sequence of variable-length records, each with
// a big-endian 16-bit length, a record type and a data type. Reals are
// 8-byte excess-64 base-16 floats.
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
package gds

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gdsvg/backend"
	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/core/geom"
)

// tracer traces with key 'gdsvg.backend'.
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.backend")
}

// GDSII record types used by the writer.
const (
	recHeader   = 0x00
	recBgnLib   = 0x01
	recLibName  = 0x02
	recUnits    = 0x03
	recEndLib   = 0x04
	recBgnStr   = 0x05
	recStrName  = 0x06
	recEndStr   = 0x07
	recBoundary = 0x08
	recLayer    = 0x0d
	recDatatype = 0x0e
	recXY       = 0x10
	recEndEl    = 0x11
)

// GDSII record data types.
const (
	dtNone  = 0x00
	dtInt16 = 0x02
	dtInt32 = 0x03
	dtReal8 = 0x05
	dtASCII = 0x06
)

// Library defaults, matching the established conversion pipeline.
const (
	DefaultLibrary = "MY_SVG_CONVERT"
	DefaultCell    = "SVG_CELL"
)

// user unit is 1 µm, database unit 1 nm
const (
	dbPerUser   = 1000.0 // database units per user unit
	unitsRecUU  = 1e-3   // user units per database unit
	unitsRecDBM = 1e-9   // database unit in meters
)

// An XY record holds at most 8191 coordinate pairs (record length is a
// 16-bit count of bytes). Larger boundaries continue in follow-up XY
// records.
const maxXYPairs = 8190

// Writer emits polygons as a GDSII stream. It implements backend.Sink.
// The library and structure prolog is written on the first polygon;
// Close writes the trailer. A Writer is not safe for concurrent use.
type Writer struct {
	w        io.Writer
	library  string
	cell     string
	begun    bool
	closed   bool
	npolys   int
	now      time.Time
	datatype int
}

var _ backend.Sink = (*Writer)(nil)

// NewWriter returns a Writer emitting to w. Empty library or cell names
// fall back to the defaults.
func NewWriter(w io.Writer, library, cell string) *Writer {
	if library == "" {
		library = DefaultLibrary
	}
	if cell == "" {
		cell = DefaultCell
	}
	return &Writer{w: w, library: library, cell: cell, now: time.Now()}
}

// Polygon is part of interface backend.Sink. Vertices are expected in
// user units; the boundary is closed by repeating the first vertex, as
// the format requires.
func (gw *Writer) Polygon(pts []geom.Point, layer int) error {
	if gw.closed {
		return core.Error(core.EINTERNAL, "polygon submitted after Close")
	}
	if len(pts) == 0 {
		return nil
	}
	if !gw.begun {
		if err := gw.prolog(); err != nil {
			return err
		}
		gw.begun = true
	}
	if err := gw.record(recBoundary, dtNone, nil); err != nil {
		return err
	}
	if err := gw.record(recLayer, dtInt16, i16(layer)); err != nil {
		return err
	}
	if err := gw.record(recDatatype, dtInt16, i16(gw.datatype)); err != nil {
		return err
	}
	coords := make([]int32, 0, 2*(len(pts)+1))
	for _, p := range pts {
		coords = append(coords, dbCoord(p.X), dbCoord(p.Y))
	}
	n := len(coords)
	if coords[0] != coords[n-2] || coords[1] != coords[n-1] {
		coords = append(coords, coords[0], coords[1]) // close the boundary
	}
	for len(coords) > 0 {
		n := len(coords)
		if n > 2*maxXYPairs {
			n = 2 * maxXYPairs
		}
		if err := gw.record(recXY, dtInt32, i32s(coords[:n])); err != nil {
			return err
		}
		coords = coords[n:]
	}
	if err := gw.record(recEndEl, dtNone, nil); err != nil {
		return err
	}
	gw.npolys++
	return nil
}

// Close is part of interface backend.Sink. It writes the structure and
// library trailer. Closing a Writer that never received a polygon still
// produces a valid, empty library.
func (gw *Writer) Close() error {
	if gw.closed {
		return nil
	}
	if !gw.begun {
		if err := gw.prolog(); err != nil {
			return err
		}
		gw.begun = true
	}
	gw.closed = true
	if err := gw.record(recEndStr, dtNone, nil); err != nil {
		return err
	}
	if err := gw.record(recEndLib, dtNone, nil); err != nil {
		return err
	}
	tracer().Infof("GDS stream closed, %d polygons written", gw.npolys)
	return nil
}

func (gw *Writer) prolog() error {
	ts := timestamp(gw.now)
	if err := gw.record(recHeader, dtInt16, i16(600)); err != nil { // stream version 6
		return err
	}
	if err := gw.record(recBgnLib, dtInt16, append(ts, ts...)); err != nil {
		return err
	}
	if err := gw.record(recLibName, dtASCII, ascii(gw.library)); err != nil {
		return err
	}
	units := append(real8(unitsRecUU), real8(unitsRecDBM)...)
	if err := gw.record(recUnits, dtReal8, units); err != nil {
		return err
	}
	if err := gw.record(recBgnStr, dtInt16, append(ts, ts...)); err != nil {
		return err
	}
	return gw.record(recStrName, dtASCII, ascii(gw.cell))
}

// record writes one GDSII record: length, type, data type, payload.
func (gw *Writer) record(rtype, dtype byte, payload []byte) error {
	hdr := []byte{0, 0, rtype, dtype}
	binary.BigEndian.PutUint16(hdr, uint16(4+len(payload)))
	if _, err := gw.w.Write(hdr); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write GDS record")
	}
	if len(payload) > 0 {
		if _, err := gw.w.Write(payload); err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot write GDS record")
		}
	}
	return nil
}

func dbCoord(v float64) int32 {
	return int32(math.Round(v * dbPerUser))
}

func i16(v int) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(int16(v)))
	return b
}

func i32s(vs []int32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(b[4*i:], uint32(v))
	}
	return b
}

// ascii pads a string to even length with a NUL, per the stream format.
func ascii(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// timestamp encodes a wall-clock time as six 16-bit integers.
func timestamp(t time.Time) []byte {
	fields := []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	b := make([]byte, 0, 12)
	for _, f := range fields {
		b = append(b, i16(f)...)
	}
	return b
}

// real8 encodes v as an 8-byte excess-64 base-16 real:
// one sign bit, a 7-bit exponent, and a 56-bit mantissa in [1/16, 1).
func real8(v float64) []byte {
	b := make([]byte, 8)
	if v == 0 {
		return b
	}
	sign := byte(0)
	if v < 0 {
		sign = 0x80
		v = -v
	}
	exp := 64
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16.0 {
		v *= 16
		exp--
	}
	mantissa := uint64(v * (1 << 56))
	b[0] = sign | byte(exp)
	for i := 7; i >= 1; i-- {
		b[i] = byte(mantissa)
		mantissa >>= 8
	}
	return b
}
