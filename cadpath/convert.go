package cadpath

import (
	"fmt"
	"math"
)

// minDimension is the smallest physical size, in inches, reported
// for a drawing, so that degenerate drawings keep a visible size.
const minDimension = 0.1

// Options tunes a conversion. The zero value is ready to use.
type Options struct {
	Bounds BoundsMode
}

// Result is a normalized drawing: the bounding box of Path
// starts at (0, 0), and WidthIn x HeightIn is its physical size.
type Result struct {
	Path              Path
	WidthIn, HeightIn float64 // at least 0.1

	UnitScale float64 // inches per drawing unit
	Extent    Point   // unclamped size of the bounding box, in drawing units
}

// ViewBox returns the size, in drawing units, matching the
// physical size of the result (that is, including the clamping).
func (r Result) ViewBox() (w, h float64) {
	return r.WidthIn / r.UnitScale, r.HeightIn / r.UnitScale
}

// Assemble translates the entities and concatenates their paths,
// in input order. Entities translating to an empty path are skipped.
func Assemble(entities []Entity) (Path, error) {
	var out Path
	for i, e := range entities {
		if e == nil {
			continue
		}
		p, err := TranslateEntity(e)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, e.Kind(), err)
		}
		if len(p) == 0 {
			Logger().Debug("skipping entity", "index", i, "kind", e.Kind())
			continue
		}
		out = append(out, p...)
	}
	if len(out) == 0 {
		return nil, ErrNoDrawableEntities
	}
	return out, nil
}

func checkUnitScale(unitScale float64) error {
	if !(unitScale > 0) || math.IsInf(unitScale, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidUnitScale, unitScale)
	}
	return nil
}

// NormalizeAndScale moves the path so that the origin of box becomes
// (0, 0), and converts the box size to inches, using unitScale
// inches per drawing unit. Both dimensions are at least 0.1 inch.
// A box with a NaN or infinite side is rejected with ErrInvalidCoordinate.
func NormalizeAndScale(p Path, box BoundingBox, unitScale float64) (Result, error) {
	if err := checkUnitScale(unitScale); err != nil {
		return Result{}, err
	}
	for _, v := range [...]float64{box.Min.X, box.Min.Y, box.Max.X, box.Max.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: bounding box %v", ErrInvalidCoordinate, box)
		}
	}
	extent := Point{X: box.Dx(), Y: box.Dy()}
	return Result{
		Path:      p.Translate(Point{X: -box.Min.X, Y: -box.Min.Y}),
		WidthIn:   math.Max(extent.X*unitScale, minDimension),
		HeightIn:  math.Max(extent.Y*unitScale, minDimension),
		UnitScale: unitScale,
		Extent:    extent,
	}, nil
}

// Convert turns the entities of a drawing into one normalized path,
// with its physical size. unitScale is the number of inches per drawing unit.
func Convert(entities []Entity, unitScale float64) (Result, error) {
	return ConvertWithOptions(entities, unitScale, Options{})
}

// ConvertWithOptions is like Convert, with the given options.
func ConvertWithOptions(entities []Entity, unitScale float64, opts Options) (Result, error) {
	if err := checkUnitScale(unitScale); err != nil {
		return Result{}, err
	}
	p, err := Assemble(entities)
	if err != nil {
		return Result{}, err
	}
	box, err := Bounds(p, opts.Bounds)
	if err != nil {
		return Result{}, err
	}
	Logger().Debug("converted drawing",
		"entities", len(entities), "commands", len(p),
		"width", box.Dx(), "height", box.Dy(), "bounds", opts.Bounds)
	return NormalizeAndScale(p, box, unitScale)
}
