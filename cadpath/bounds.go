package cadpath

import (
	"math"
)

// compute the bounding box of a path, needed to normalize it
// and to compute its physical size

// BoundsMode selects how arcs contribute to a bounding box.
type BoundsMode uint8

const (
	// ExactBounds includes the points where an arc reaches
	// its horizontal or vertical extrema.
	ExactBounds BoundsMode = iota
	// EndpointBounds only uses the end points of arcs, which
	// under-estimates the box when an arc bulges outside its chord.
	EndpointBounds
)

func (m BoundsMode) String() string {
	switch m {
	case ExactBounds:
		return "exact"
	case EndpointBounds:
		return "endpoints"
	default:
		return "<unknown BoundsMode>"
	}
}

// BoundingBox is an axis-aligned rectangle, with Min <= Max.
type BoundingBox struct {
	Min, Max Point
}

// Dx returns the width of the box.
func (b BoundingBox) Dx() float64 { return b.Max.X - b.Min.X }

// Dy returns the height of the box.
func (b BoundingBox) Dy() float64 { return b.Max.Y - b.Min.Y }

func emptyBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func (b *BoundingBox) extend(p Point) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Bounds returns the bounding box of the path.
// It fails with ErrEmptyPath if the path has no coordinate.
func Bounds(p Path, mode BoundsMode) (BoundingBox, error) {
	box := emptyBox()
	seen := false
	var current, start Point
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = Point(op), Point(op)
		case LineTo:
			current = Point(op)
		case ArcTo:
			if mode == ExactBounds {
				for _, e := range arcExtrema(current, op) {
					box.extend(e)
				}
			}
			current = op.End
		case Close:
			current = start
			continue
		default:
			continue
		}
		box.extend(current)
		seen = true
	}
	if !seen {
		return BoundingBox{}, ErrEmptyPath
	}
	return box, nil
}

// arcCenter returns the center and radius of the circle drawn by a,
// starting at from. As in SVG, a radius too small to join the end points
// is enlarged to half the chord. ok is false for a zero length arc.
func arcCenter(from Point, a ArcTo) (c Point, r float64, ok bool) {
	chord := a.End.Sub(from)
	d := chord.Length() / 2
	if d == 0 || math.IsNaN(d) {
		return Point{}, 0, false
	}
	r = math.Abs(a.Radius)
	var h float64 // distance from the chord midpoint to the center
	if r <= d {
		r = d
	} else {
		h = math.Sqrt(r*r - d*d)
	}
	u := chord.Mul(1 / (2 * d))
	n := Point{X: -u.Y, Y: u.X}
	mid := from.Add(chord.Mul(0.5))
	if a.Large != a.Sweep {
		return mid.Add(n.Mul(h)), r, true
	}
	return mid.Sub(n.Mul(h)), r, true
}

const angleEpsilon = 1e-9

// normAngle maps a to [0, 2π).
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// onArc reports whether the angle phi lies on the arc going from theta1
// to theta2, towards increasing angles when sweep is set.
func onArc(phi, theta1, theta2 float64, sweep bool) bool {
	if !sweep {
		phi, theta1, theta2 = -phi, -theta1, -theta2
	}
	span := normAngle(theta2 - theta1)
	return normAngle(phi-theta1) <= span+angleEpsilon
}

// arcExtrema returns the points of the arc a, starting at from, where
// it reaches the angles 0, 90, 180 and 270 degrees around its center.
func arcExtrema(from Point, a ArcTo) []Point {
	c, r, ok := arcCenter(from, a)
	if !ok {
		return nil
	}
	theta1 := math.Atan2(from.Y-c.Y, from.X-c.X)
	theta2 := math.Atan2(a.End.Y-c.Y, a.End.X-c.X)

	candidates := [4]Point{
		{X: c.X + r, Y: c.Y},
		{X: c.X, Y: c.Y + r},
		{X: c.X - r, Y: c.Y},
		{X: c.X, Y: c.Y - r},
	}
	var res []Point
	for i, q := range candidates {
		if onArc(float64(i)*math.Pi/2, theta1, theta2, a.Sweep) {
			res = append(res, q)
		}
	}
	return res
}
