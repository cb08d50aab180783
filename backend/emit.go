// Package backend declares the contract between the geometry pipeline
// and concrete output sinks. A sink receives ordered 2D vertex lists
// plus a layer tag and is responsible for all output encoding; the
// pipeline has no knowledge of the format behind it.
package backend

import (
	"github.com/npillmayer/gdsvg/core/geom"
)

// Sink accepts transformed polygons, one at a time, in emission order.
type Sink interface {
	// Polygon submits one ordered vertex sequence with its layer tag.
	Polygon(pts []geom.Point, layer int) error
	// Close finalizes the output. No Polygon calls may follow.
	Close() error
}
