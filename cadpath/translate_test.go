package cadpath

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// approx compares floats up to an absolute margin
var approx = cmpopts.EquateApprox(0, 1e-9)

func pt(x, y float64) Point { return Point{X: x, Y: y} }

func TestTranslateEntity(t *testing.T) {
	for _, test := range []struct {
		name string
		e    Entity
		want Path
	}{
		{
			"line",
			Line{Start: pt(0, 0), End: pt(10, 5)},
			Path{MoveTo{X: 0, Y: 0}, LineTo{X: 10, Y: -5}},
		},
		{
			"open polyline",
			Polyline{Vertices: []Vertex{{Point: pt(0, 0)}, {Point: pt(3, 4)}, {Point: pt(3, 8)}}},
			Path{MoveTo{X: 0, Y: 0}, LineTo{X: 3, Y: -4}, LineTo{X: 3, Y: -8}},
		},
		{
			"polyline with bulge",
			Polyline{Vertices: []Vertex{{Point: pt(0, 0), Bulge: 1}, {Point: pt(10, 0)}}},
			Path{MoveTo{X: 0, Y: 0}, ArcTo{Radius: 5, End: pt(10, 0)}},
		},
		{
			"closed polyline",
			Polyline{
				Vertices: []Vertex{{Point: pt(0, 0)}, {Point: pt(4, 0)}, {Point: pt(4, 2), Bulge: -1}},
				Closed:   true,
			},
			Path{
				MoveTo{X: 0, Y: 0}, LineTo{X: 4, Y: 0}, LineTo{X: 4, Y: -2},
				ArcTo{Radius: math.Sqrt(20) / 2, Sweep: true, End: pt(0, 0)},
				Close{},
			},
		},
		{
			"quarter arc",
			Arc{Center: pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: 90},
			Path{MoveTo{X: 0, Y: -1}, ArcTo{Radius: 1, Sweep: true, End: pt(1, 0)}},
		},
		{
			"large arc",
			Arc{Center: pt(2, 2), Radius: 1, StartAngle: 90, EndAngle: 0},
			Path{MoveTo{X: 3, Y: -2}, ArcTo{Radius: 1, Large: true, Sweep: true, End: pt(2, -3)}},
		},
		{
			"circle",
			Circle{Center: pt(1, 2), Radius: 5},
			Path{
				MoveTo{X: -4, Y: -2},
				ArcTo{Radius: 5, Sweep: true, End: pt(6, -2)},
				ArcTo{Radius: 5, Sweep: true, End: pt(-4, -2)},
				Close{},
			},
		},
		{
			"spline fit points",
			Spline{FitPoints: []Point{pt(0, 0), pt(1, 1), pt(2, 0)}, ControlPoints: []Point{pt(9, 9), pt(8, 8)}},
			Path{MoveTo{X: 0, Y: 0}, LineTo{X: 1, Y: -1}, LineTo{X: 2, Y: 0}},
		},
		{
			"spline control points",
			Spline{ControlPoints: []Point{pt(9, 9), pt(8, 8)}},
			Path{MoveTo{X: 9, Y: -9}, LineTo{X: 8, Y: -8}},
		},
		{
			"single vertex polyline",
			Polyline{Vertices: []Vertex{{Point: pt(1, 1), Bulge: 0.5}}, Closed: true},
			Path{MoveTo{X: 1, Y: -1}},
		},
		{
			"single point spline",
			Spline{FitPoints: []Point{pt(1, 1)}},
			Path{MoveTo{X: 1, Y: -1}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := TranslateEntity(test.e)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got, approx); diff != "" {
				t.Errorf("unexpected path (-want +got):\n%s", diff)
			}
		})
	}
}

type hatch struct{}

func (hatch) Kind() string { return "HATCH" }

func TestTranslateSkipped(t *testing.T) {
	for _, e := range []Entity{
		Arc{Center: pt(1, 1)}, // no radius
		Arc{Center: pt(1, 1), Radius: -2, EndAngle: 90},
		Arc{Center: pt(1, 1), Radius: 2, StartAngle: 30, EndAngle: 390},
		Arc{Radius: math.NaN(), EndAngle: 90},
		Circle{Center: pt(1, 1)},
		Polyline{},
		Spline{},
		hatch{},
	} {
		p, err := TranslateEntity(e)
		if err != nil {
			t.Errorf("%#v: unexpected error %s", e, err)
		}
		if len(p) != 0 {
			t.Errorf("%#v: expected an empty path, got %s", e, p)
		}
	}
}

func TestClosedPolylineEndsAtFirstVertex(t *testing.T) {
	for _, bulge := range []float64{0, 0.3, -0.7, 2} {
		pl := Polyline{
			Vertices: []Vertex{
				{Point: pt(1, 1), Bulge: 0.5},
				{Point: pt(7, 2)},
				{Point: pt(5, 9), Bulge: -0.2},
				{Point: pt(-2, 4), Bulge: bulge},
			},
			Closed: true,
		}
		p, err := TranslateEntity(pl)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := p[len(p)-1].(Close); !ok {
			t.Fatalf("bulge %g: path does not end with Close: %s", bulge, p)
		}
		var last Point
		switch op := p[len(p)-2].(type) {
		case LineTo:
			last = Point(op)
		case ArcTo:
			last = op.End
		default:
			t.Fatalf("unexpected command %T before Close", op)
		}
		if diff := cmp.Diff(Point(p[0].(MoveTo)), last, approx); diff != "" {
			t.Errorf("bulge %g: closing point differs from the first vertex:\n%s", bulge, diff)
		}
	}
}

func TestTranslateCoincidentBulge(t *testing.T) {
	pl := Polyline{Vertices: []Vertex{{Point: pt(1, 1), Bulge: 0.5}, {Point: pt(1, 1)}}}
	_, err := TranslateEntity(pl)
	if err == nil {
		t.Fatal("expected an error for a bulge between coincident vertices")
	}
	if !errors.Is(err, ErrDegenerateBulge) {
		t.Errorf("unexpected error %v", err)
	}
}
