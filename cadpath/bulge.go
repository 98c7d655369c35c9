package cadpath

import (
	"fmt"
	"math"
)

// ResolveBulge returns the arc joining p1 to p2 described by
// a polyline bulge. The points are expected in the output (Y-down)
// frame, and bulge is the value stored in the drawing: a positive
// bulge turns counter-clockwise in the CAD frame, that is towards
// decreasing output angles.
//
// The sagitta s of the arc is |bulge| * chord / 2, and its radius
// (chord²/4 + s²) / 2s.
func ResolveBulge(p1, p2 Point, bulge float64) (ArcTo, error) {
	if bulge == 0 || math.IsNaN(bulge) || math.IsInf(bulge, 0) {
		return ArcTo{}, fmt.Errorf("%w: bulge %g", ErrDegenerateBulge, bulge)
	}
	chord := p2.Sub(p1).Length()
	if chord == 0 {
		return ArcTo{}, fmt.Errorf("%w: coincident vertices at (%g, %g)", ErrDegenerateBulge, p1.X, p1.Y)
	}
	b := math.Abs(bulge)
	sagitta := b * chord / 2
	radius := (chord*chord/4 + sagitta*sagitta) / (2 * sagitta)
	return ArcTo{
		Radius: radius,
		Large:  b > 1,
		Sweep:  bulge < 0,
		End:    p2,
	}, nil
}
