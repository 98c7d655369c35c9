// Implements an abstract representation of
// CAD drawing outlines, as a normalized vector path
// which can then be consumed by painting drivers
// or serialized to SVG.
package cadpath

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Point is a 2D coordinate, in drawing units.
type Point = vec.Vec2

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathArcTo
	pathClose
)

// Command groups the different path commands
type Command interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

// ArcTo draws a circular arc from the current point to End.
type ArcTo struct {
	Radius float64
	Large  bool // the arc spans more than 180 degrees
	// Sweep is set when the arc is traced towards increasing angles
	// of the output (Y-down) frame, like the SVG sweep-flag.
	Sweep bool
	End   Point
}

type Close struct{}

func (MoveTo) command() pathCommand { return pathMoveTo }
func (LineTo) command() pathCommand { return pathLineTo }
func (ArcTo) command() pathCommand  { return pathArcTo }
func (Close) command() pathCommand  { return pathClose }

// Path describes a sequence of basic drawing operations.
// Every CAD entity is reduced to a Path.
type Path []Command

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ToSVGPath returns a string representation of the path,
// suitable for the d attribute of an SVG path element.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case ArcTo:
			chunks[i] = fmt.Sprintf("A%4.3f,%4.3f 0 %d,%d %4.3f,%4.3f", op.Radius, op.Radius,
				boolFlag(op.Large), boolFlag(op.Sweep), op.End.X, op.End.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// Arc adds a circular arc of radius r to the current curve.
func (p *Path) Arc(r float64, large, sweep bool, end Point) {
	*p = append(*p, ArcTo{Radius: r, Large: large, Sweep: sweep, End: end})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Translate returns a copy of the path moved by d.
func (p Path) Translate(d Point) Path {
	return p.Transform(matrix.Translate(d.X, d.Y))
}

// Transform returns a copy of the path with m applied to every point.
// Circular arcs stay circular only under similarity transforms
// (translation, rotation, uniform scale, mirroring), which is all this
// package uses: radii are scaled by sqrt|det m| and a mirroring m
// reverses the sweep of the arcs.
func (p Path) Transform(m matrix.Matrix) Path {
	det := m[0]*m[3] - m[1]*m[2]
	scale := math.Sqrt(math.Abs(det))
	mirror := det < 0

	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(apply(m, Point(op)))
		case LineTo:
			out[i] = LineTo(apply(m, Point(op)))
		case ArcTo:
			out[i] = ArcTo{
				Radius: op.Radius * scale,
				Large:  op.Large,
				Sweep:  op.Sweep != mirror,
				End:    apply(m, op.End),
			}
		default:
			out[i] = op
		}
	}
	return out
}

func apply(m matrix.Matrix, p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}
