package cadpath

import (
	"fmt"
	"math"
)

// This file implements the transformation from
// CAD entities to their path equivalent.

// flip maps a CAD (Y-up) point to the output (Y-down) frame.
// It is the only place where the vertical axis is inverted.
func flip(p Point) Point {
	return Point{X: p.X, Y: -p.Y}
}

// polar returns the point of the circle (c, r) at angle deg, in the CAD frame.
func polar(c Point, r, deg float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Point{X: c.X + r*cos, Y: c.Y + r*sin}
}

// TranslateEntity converts one entity to a path in the output frame.
// Unsupported and degenerate entities (for instance an arc without
// radius) translate to an empty path. A polyline with a single vertex,
// or a spline with a single point, translates to a lone MoveTo.
// The only error is ErrDegenerateBulge, for a polyline segment
// carrying a bulge between coincident vertices.
func TranslateEntity(e Entity) (Path, error) {
	switch e := e.(type) {
	case Line:
		return translateLine(e), nil
	case Polyline:
		return translatePolyline(e)
	case Arc:
		return translateArc(e), nil
	case Circle:
		return translateCircle(e), nil
	case Spline:
		return translateSpline(e), nil
	default:
		return nil, nil
	}
}

func translateLine(l Line) Path {
	var p Path
	p.Start(flip(l.Start))
	p.Line(flip(l.End))
	return p
}

func translatePolyline(pl Polyline) (Path, error) {
	vs := pl.Vertices
	if len(vs) == 0 {
		return nil, nil
	}
	var p Path
	p.Start(flip(vs[0].Point))
	if len(vs) == 1 {
		return p, nil
	}
	for i := 1; i < len(vs); i++ {
		if err := p.segment(vs[i-1], vs[i].Point); err != nil {
			return nil, fmt.Errorf("polyline segment %d: %w", i-1, err)
		}
	}
	if pl.Closed {
		if err := p.segment(vs[len(vs)-1], vs[0].Point); err != nil {
			return nil, fmt.Errorf("polyline closing segment: %w", err)
		}
		p.Stop(true)
	}
	return p, nil
}

// segment adds the polyline edge leaving v and ending at to,
// as an arc when v carries a bulge.
func (p *Path) segment(v Vertex, to Point) error {
	if v.Bulge == 0 {
		p.Line(flip(to))
		return nil
	}
	arc, err := ResolveBulge(flip(v.Point), flip(to), v.Bulge)
	if err != nil {
		return err
	}
	*p = append(*p, arc)
	return nil
}

func translateArc(a Arc) Path {
	if !(a.Radius > 0) || math.IsInf(a.Radius, 1) {
		return nil
	}
	span := math.Mod(a.EndAngle-a.StartAngle, 360)
	if span < 0 {
		span += 360
	}
	if span == 0 || math.IsNaN(span) {
		return nil
	}
	// the flip reverses the winding: trace the arc from its CAD end
	// angle back to its start angle, towards increasing output angles
	var p Path
	p.Start(flip(polar(a.Center, a.Radius, a.EndAngle)))
	p.Arc(a.Radius, span > 180, true, flip(polar(a.Center, a.Radius, a.StartAngle)))
	return p
}

// translateCircle uses two half circles, from the leftmost point
// to the rightmost one and back.
func translateCircle(c Circle) Path {
	r := c.Radius
	if !(r > 0) || math.IsInf(r, 1) {
		return nil
	}
	center := flip(c.Center)
	left := Point{X: center.X - r, Y: center.Y}
	right := Point{X: center.X + r, Y: center.Y}
	var p Path
	p.Start(left)
	p.Arc(r, false, true, right)
	p.Arc(r, false, true, left)
	p.Stop(true)
	return p
}

func translateSpline(s Spline) Path {
	pts := s.FitPoints
	if len(pts) == 0 {
		pts = s.ControlPoints
	}
	if len(pts) == 0 {
		return nil
	}
	var p Path
	p.Start(flip(pts[0]))
	for _, pt := range pts[1:] {
		p.Line(flip(pt))
	}
	return p
}
