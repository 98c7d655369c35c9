package caddoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/cadpath/cadpath"
	"gopkg.in/yaml.v3"
)

var errPointFormat = errors.New("a point is either [x, y] or {x: , y: }")

// entityCursor is used while reading the entities of a document
type entityCursor struct {
	errorMode ErrorMode
}

type entityFunc func(node *yaml.Node) (cadpath.Entity, error)

var entityFuncs = map[string]entityFunc{
	"line":       lineF,
	"lwpolyline": polylineF,
	"polyline":   polylineF,
	"arc":        arcF,
	"circle":     circleF,
	"spline":     splineF,
}

func (c *entityCursor) readEntity(node *yaml.Node) (cadpath.Entity, error) {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, err
	}
	ef, ok := entityFuncs[strings.ToLower(strings.TrimSpace(head.Type))]
	if !ok {
		errStr := "cannot process entity " + head.Type
		if head.Type == "" {
			errStr = "cannot process entity without type"
		}
		if c.errorMode == StrictErrorMode {
			return nil, errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			cadpath.Logger().Warn(errStr, "line", node.Line)
		}
		return nil, nil
	}
	return ef(node)
}

// point accepts both the sequence and the mapping forms.
// A z coordinate is ignored.
type point cadpath.Point

func (p *point) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var coords []float64
		if err := value.Decode(&coords); err != nil {
			return err
		}
		if len(coords) != 2 && len(coords) != 3 {
			return fmt.Errorf("line %d: %w", value.Line, errPointFormat)
		}
		p.X, p.Y = coords[0], coords[1]
	case yaml.MappingNode:
		var xy struct {
			X, Y float64
		}
		if err := value.Decode(&xy); err != nil {
			return err
		}
		p.X, p.Y = xy.X, xy.Y
	default:
		return fmt.Errorf("line %d: %w", value.Line, errPointFormat)
	}
	return nil
}

func toPoints(ps []point) []cadpath.Point {
	if len(ps) == 0 {
		return nil
	}
	out := make([]cadpath.Point, len(ps))
	for i, p := range ps {
		out[i] = cadpath.Point(p)
	}
	return out
}

func lineF(node *yaml.Node) (cadpath.Entity, error) {
	var l struct {
		Start point `yaml:"start"`
		End   point `yaml:"end"`
	}
	if err := node.Decode(&l); err != nil {
		return nil, err
	}
	return cadpath.Line{Start: cadpath.Point(l.Start), End: cadpath.Point(l.End)}, nil
}

// closedFlag is the bit of the DXF polyline flags (group code 70)
// marking a closed polyline
const closedFlag = 1

func polylineF(node *yaml.Node) (cadpath.Entity, error) {
	var pl struct {
		Closed   bool `yaml:"closed"`
		Flags    int  `yaml:"flags"`
		Vertices []struct {
			X, Y, Bulge float64
		} `yaml:"vertices"`
	}
	if err := node.Decode(&pl); err != nil {
		return nil, err
	}
	out := cadpath.Polyline{Closed: pl.Closed || pl.Flags&closedFlag != 0}
	for _, v := range pl.Vertices {
		out.Vertices = append(out.Vertices, cadpath.Vertex{Point: cadpath.Point{X: v.X, Y: v.Y}, Bulge: v.Bulge})
	}
	return out, nil
}

func arcF(node *yaml.Node) (cadpath.Entity, error) {
	var a struct {
		Center     point   `yaml:"center"`
		Radius     float64 `yaml:"radius"`
		StartAngle float64 `yaml:"start_angle"`
		EndAngle   float64 `yaml:"end_angle"`
	}
	if err := node.Decode(&a); err != nil {
		return nil, err
	}
	return cadpath.Arc{
		Center:     cadpath.Point(a.Center),
		Radius:     a.Radius,
		StartAngle: a.StartAngle,
		EndAngle:   a.EndAngle,
	}, nil
}

func circleF(node *yaml.Node) (cadpath.Entity, error) {
	var c struct {
		Center point   `yaml:"center"`
		Radius float64 `yaml:"radius"`
	}
	if err := node.Decode(&c); err != nil {
		return nil, err
	}
	return cadpath.Circle{Center: cadpath.Point(c.Center), Radius: c.Radius}, nil
}

func splineF(node *yaml.Node) (cadpath.Entity, error) {
	var s struct {
		FitPoints     []point `yaml:"fit_points"`
		ControlPoints []point `yaml:"control_points"`
	}
	if err := node.Decode(&s); err != nil {
		return nil, err
	}
	return cadpath.Spline{FitPoints: toPoints(s.FitPoints), ControlPoints: toPoints(s.ControlPoints)}, nil
}
