package cadpath

import "errors"

var (
	// ErrNoDrawableEntities is returned when a drawing is empty,
	// or none of its entities produce any path command.
	ErrNoDrawableEntities = errors.New("unsupported or empty drawing: no drawable entities")

	// ErrEmptyPath is returned when the bounds of a path without
	// coordinates are requested.
	ErrEmptyPath = errors.New("bounding box of an empty path")

	ErrInvalidUnitScale = errors.New("unit scale must be a positive number")

	// ErrDegenerateBulge is returned when a bulge arc is requested
	// for a zero bulge or between coincident vertices.
	ErrDegenerateBulge = errors.New("degenerate bulge arc")

	ErrUnknownUnit = errors.New("unknown drawing unit")

	// ErrInvalidCoordinate is returned when the bounding box of a
	// drawing is not finite, for instance after a NaN coordinate.
	ErrInvalidCoordinate = errors.New("drawing coordinates must be finite")
)
