package cadpath

import (
	"math"
)

// This file implements the approximation of
// circular arcs by cubic Bézier curves.

// maxDx is the maximum radians a cubic splice is allowed to span
// when approximating an arc.
const maxDx float64 = math.Pi / 8

// addArc adds the arc `a`, starting at `from`, to the drawer,
// as a sequence of cubic Bézier curves.
func addArc(d Drawer, from Point, a ArcTo) {
	c, r, ok := arcCenter(from, a)
	if !ok { // zero length arc
		return
	}
	startAngle := math.Atan2(from.Y-c.Y, from.X-c.X)
	endAngle := math.Atan2(a.End.Y-c.Y, a.End.X-c.X)
	deltaEta := endAngle - startAngle
	// the center already accounts for the large arc flag,
	// only the direction remains to be fixed
	if a.Sweep && deltaEta <= 0 {
		deltaEta += 2 * math.Pi
	} else if !a.Sweep && deltaEta >= 0 {
		deltaEta -= 2 * math.Pi
	}

	// Round up to determine number of cubic splines to approximate the arc
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the circle using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	last := from
	lastPrime := circlePrime(r, startAngle)
	for i := 1; i <= segs; i++ {
		eta := startAngle + dEta*float64(i)
		var next Point
		if i == segs {
			next = a.End // Just makes the end point exact; no roundoff error
		} else {
			next = circlePointAt(c, r, eta)
		}
		prime := circlePrime(r, eta)
		d.CubeBezier(last.Add(lastPrime.Mul(alpha)), next.Sub(prime.Mul(alpha)), next)
		last, lastPrime = next, prime
	}
}

// circlePrime gives the tangent vector of the circle of radius r at angle eta
func circlePrime(r, eta float64) Point {
	sin, cos := math.Sincos(eta)
	return Point{X: -r * sin, Y: r * cos}
}

// circlePointAt gives the point of the circle (c, r) at angle eta
func circlePointAt(c Point, r, eta float64) Point {
	sin, cos := math.Sincos(eta)
	return Point{X: c.X + r*cos, Y: c.Y + r*sin}
}
