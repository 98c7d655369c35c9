package cadpath

import (
	"seehuhn.de/go/geom/matrix"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any CAD knowledge.
// In particular, transformations are already applied to the points,
// and arcs are reduced to cubic Bézier curves, before
// sending them to the Drawer.
type Drawer interface {
	// Start starts a new path at the given point.
	Start(a Point)

	// Line adds a line from the current point to `b`
	Line(b Point)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d Point)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)
}

// DrawTo sends the path to `d`, after applying the transform `m`,
// which should be a similarity (see Transform).
func (p Path) DrawTo(d Drawer, m matrix.Matrix) {
	var current, start Point
	started := false
	begin := func() {
		if !started {
			d.Start(current)
			started = true
		}
	}
	for _, op := range p.Transform(m) {
		switch op := op.(type) {
		case MoveTo:
			if started {
				d.Stop(false) // implicit end of the previous sub path
			}
			current, start = Point(op), Point(op)
			d.Start(current)
			started = true
		case LineTo:
			begin()
			current = Point(op)
			d.Line(current)
		case ArcTo:
			begin()
			addArc(d, current, op)
			current = op.End
		case Close:
			if started {
				d.Stop(true)
				started = false
			}
			current = start
		}
	}
	if started {
		d.Stop(false)
	}
}
