package caddoc

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/cadpath/cadpath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleDoc = `
units: mm
entities:
  - {type: LINE, start: [0, 0], end: [10, 0]}
  - type: lwpolyline
    closed: true
    vertices: [{x: 0, y: 0, bulge: 1}, {x: 10, y: 0}]
  - type: POLYLINE
    flags: 1
    vertices:
      - {x: 1, y: 2}
      - {x: 3, y: 4, bulge: -0.5}
      - {x: 5, y: 2}
  - {type: ARC, center: {x: 1, y: 1}, radius: 5, start_angle: 0, end_angle: 90}
  - {type: Circle, center: [0, 0, 7], radius: 5}
  - {type: SPLINE, fit_points: [[0, 0], [1, 1]], control_points: [[2, 2], [3, 3]]}
  - {type: ARC, center: [4, 4]}
`

func TestReadDrawingStream(t *testing.T) {
	d, err := ReadDrawingStream(strings.NewReader(sampleDoc), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := func(x, y float64) cadpath.Point { return cadpath.Point{X: x, Y: y} }
	want := &Drawing{
		Units: "mm",
		Entities: []cadpath.Entity{
			cadpath.Line{Start: p(0, 0), End: p(10, 0)},
			cadpath.Polyline{Vertices: []cadpath.Vertex{{Point: p(0, 0), Bulge: 1}, {Point: p(10, 0)}}, Closed: true},
			cadpath.Polyline{Vertices: []cadpath.Vertex{{Point: p(1, 2)}, {Point: p(3, 4), Bulge: -0.5}, {Point: p(5, 2)}}, Closed: true},
			cadpath.Arc{Center: p(1, 1), Radius: 5, EndAngle: 90},
			cadpath.Circle{Center: p(0, 0), Radius: 5},
			cadpath.Spline{FitPoints: []cadpath.Point{p(0, 0), p(1, 1)}, ControlPoints: []cadpath.Point{p(2, 2), p(3, 3)}},
			cadpath.Arc{Center: p(4, 4)},
		},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	res, err := cadpath.Convert(d.Entities, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.WidthIn <= 0 || res.HeightIn <= 0 {
		t.Errorf("unexpected size %g x %g", res.WidthIn, res.HeightIn)
	}
}

func TestReadJSON(t *testing.T) {
	doc := `{"insunits": 1, "entities": [{"type": "LINE", "start": [0, 0], "end": [10, 0]}]}`
	d, err := ReadDrawingStream(strings.NewReader(doc), Options{ErrorMode: StrictErrorMode})
	if err != nil {
		t.Fatal(err)
	}
	scale, err := d.UnitScale()
	if err != nil {
		t.Fatal(err)
	}
	res, err := cadpath.Convert(d.Entities, scale)
	if err != nil {
		t.Fatal(err)
	}
	if res.WidthIn != 10 || res.HeightIn != 0.1 {
		t.Errorf("unexpected size %g x %g", res.WidthIn, res.HeightIn)
	}
}

const unknownDoc = `
entities:
  - {type: HATCH, pattern: ANSI31}
  - {start: [0, 0], end: [1, 1]}
  - {type: LINE, start: [0, 0], end: [1, 1]}
`

func TestErrorModes(t *testing.T) {
	_, err := ReadDrawingStream(strings.NewReader(unknownDoc), Options{ErrorMode: StrictErrorMode})
	if err == nil || !strings.Contains(err.Error(), "HATCH") {
		t.Errorf("expected an error about HATCH, got %v", err)
	}

	var buf bytes.Buffer
	cadpath.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer cadpath.SetLogger(nil)

	for _, mode := range []ErrorMode{IgnoreErrorMode, WarnErrorMode} {
		buf.Reset()
		d, err := ReadDrawingStream(strings.NewReader(unknownDoc), Options{ErrorMode: mode})
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Entities) != 1 {
			t.Errorf("expected one entity, got %v", d.Entities)
		}
		logged := strings.Count(buf.String(), "level=WARN")
		if mode == IgnoreErrorMode && logged != 0 {
			t.Errorf("unexpected warnings:\n%s", buf.String())
		}
		if mode == WarnErrorMode && logged != 2 {
			t.Errorf("expected 2 warnings, got:\n%s", buf.String())
		}
	}
}

func TestReadInvalid(t *testing.T) {
	for _, doc := range []string{
		"",
		"entities: [{type: LINE, start: [0], end: [1, 1]}]",
		"entities: [{type: CIRCLE, center: 4, radius: 1}]",
		"entities: [{type: CIRCLE, center: [0, 0], radius: wide}]",
		"entities: {type: LINE}",
		"units: [",
	} {
		if _, err := ReadDrawingStream(strings.NewReader(doc), Options{}); err == nil {
			t.Errorf("%q: expected an error", doc)
		}
	}
	if _, err := ReadDrawingStream(strings.NewReader(""), Options{}); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := ReadDrawingStream(strings.NewReader("entities: []"), Options{Encoding: "no-such-charset"}); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}

func TestReadEncoding(t *testing.T) {
	// "units: µm" in windows-1252
	doc := []byte("units: \xb5m\nentities: []\n")
	d, err := ReadDrawingStream(bytes.NewReader(doc), Options{Encoding: "windows-1252"})
	if err != nil {
		t.Fatal(err)
	}
	if d.Units != "µm" {
		t.Fatalf("unexpected units %q", d.Units)
	}
	scale, err := d.UnitScale()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(1/25400., scale, cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDrawingUnitScale(t *testing.T) {
	for _, test := range []struct {
		d    Drawing
		want float64
		err  bool
	}{
		{Drawing{Units: "in"}, 1, false},
		{Drawing{Units: "ft", InsUnits: 4}, 12, false},
		{Drawing{InsUnits: 2}, 12, false},
		{Drawing{}, 0, true},
		{Drawing{Units: "parsec"}, 0, true},
	} {
		got, err := test.d.UnitScale()
		if test.err {
			if !errors.Is(err, cadpath.ErrUnknownUnit) {
				t.Errorf("%v: expected ErrUnknownUnit, got %v", test.d, err)
			}
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%v: expected %g, got %g", test.d, test.want, got)
		}
	}
}
