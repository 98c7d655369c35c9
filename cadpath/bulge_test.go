package cadpath

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveBulge(t *testing.T) {
	for _, test := range []struct {
		p1, p2 Point
		bulge  float64
		want   ArcTo
	}{
		{pt(0, 0), pt(10, 0), 1, ArcTo{Radius: 5, End: pt(10, 0)}},
		{pt(0, 0), pt(10, 0), -1, ArcTo{Radius: 5, Sweep: true, End: pt(10, 0)}},
		{pt(1, 0), pt(0, 1), math.Tan(math.Pi / 8), ArcTo{Radius: 1, End: pt(0, 1)}},
		{pt(0, 0), pt(2, 0), 2, ArcTo{Radius: 1.25, Large: true, End: pt(2, 0)}},
		{pt(0, 0), pt(0, -6), -0.5, ArcTo{Radius: 3.75, Sweep: true, End: pt(0, -6)}},
	} {
		got, err := ResolveBulge(test.p1, test.p2, test.bulge)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.want, got, approx); diff != "" {
			t.Errorf("bulge %g: (-want +got):\n%s", test.bulge, diff)
		}
	}
}

func TestResolveBulgeSymmetry(t *testing.T) {
	p1, p2 := pt(-3, 2), pt(4, 7)
	for _, b := range []float64{0.1, 0.5, 1, 1.5, 4} {
		pos, err := ResolveBulge(p1, p2, b)
		if err != nil {
			t.Fatal(err)
		}
		neg, err := ResolveBulge(p1, p2, -b)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(pos.Radius, neg.Radius, approx); diff != "" {
			t.Errorf("bulge %g: radius differs with the sign:\n%s", b, diff)
		}
		if pos.Large != neg.Large || pos.Sweep == neg.Sweep {
			t.Errorf("bulge %g: unexpected flags %v %v", b, pos, neg)
		}
		// the circle goes through both points
		c, r, ok := arcCenter(p1, pos)
		if !ok {
			t.Fatal("no center")
		}
		for _, q := range []Point{p1, p2} {
			if d := q.Sub(c).Length(); math.Abs(d-r) > 1e-9 {
				t.Errorf("bulge %g: point %v at distance %g from the center, expected %g", b, q, d, r)
			}
		}
	}
}

func TestResolveBulgeDegenerate(t *testing.T) {
	for _, test := range []struct {
		p1, p2 Point
		bulge  float64
	}{
		{pt(0, 0), pt(1, 0), 0},
		{pt(0, 0), pt(1, 0), math.NaN()},
		{pt(0, 0), pt(1, 0), math.Inf(-1)},
		{pt(2, 3), pt(2, 3), 0.5},
	} {
		_, err := ResolveBulge(test.p1, test.p2, test.bulge)
		if !errors.Is(err, ErrDegenerateBulge) {
			t.Errorf("%v %v %g: expected ErrDegenerateBulge, got %v", test.p1, test.p2, test.bulge, err)
		}
	}
}

// A positive bulge turns counter-clockwise in the CAD frame: going
// from (0,0) to (10,0), the half circle passes below the chord, that
// is on the +Y side of the output frame.
func TestBulgeOrientation(t *testing.T) {
	for _, test := range []struct {
		bulge float64
		want  BoundingBox
	}{
		{1, BoundingBox{Min: pt(0, 0), Max: pt(10, 5)}},
		{-1, BoundingBox{Min: pt(0, -5), Max: pt(10, 0)}},
	} {
		p, err := TranslateEntity(Polyline{Vertices: []Vertex{{Point: pt(0, 0), Bulge: test.bulge}, {Point: pt(10, 0)}}})
		if err != nil {
			t.Fatal(err)
		}
		box, err := Bounds(p, ExactBounds)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.want, box, approx); diff != "" {
			t.Errorf("bulge %g: (-want +got):\n%s", test.bulge, diff)
		}
	}
}
