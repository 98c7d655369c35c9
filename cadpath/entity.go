package cadpath

// This file defines the CAD entities consumed by the converter,
// as produced by a DXF parser. Coordinates are in drawing units,
// in the CAD (Y-up) frame, and angles are in degrees measured
// counter-clockwise from +X.

// Entity is one typed geometric entity of a drawing.
// Entities of kinds this package does not know are skipped.
type Entity interface {
	// Kind returns the DXF entity name, such as "LINE".
	Kind() string
}

type Line struct {
	Start, End Point
}

// Vertex is a polyline vertex. Bulge describes the segment
// leaving the vertex: it is tan(included angle / 4), zero for a
// straight segment and positive when the arc turns counter-clockwise.
type Vertex struct {
	Point Point
	Bulge float64
}

// Polyline covers both the POLYLINE and LWPOLYLINE entities.
type Polyline struct {
	Vertices []Vertex
	Closed   bool
}

// Arc is traced counter-clockwise from StartAngle to EndAngle.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

type Circle struct {
	Center Point
	Radius float64
}

// Spline is approximated by the polyline through its
// fit points, or its control points when it has no fit points.
type Spline struct {
	FitPoints     []Point
	ControlPoints []Point
}

func (Line) Kind() string     { return "LINE" }
func (Polyline) Kind() string { return "LWPOLYLINE" }
func (Arc) Kind() string      { return "ARC" }
func (Circle) Kind() string   { return "CIRCLE" }
func (Spline) Kind() string   { return "SPLINE" }
