package collision

import "errors"

var (
	ErrTooFewVertices    = errors.New("collision: polygon needs at least 3 vertices")
	ErrDegeneratePolygon = errors.New("collision: polygon has zero area")
	ErrNonConvexPolygon  = errors.New("collision: polygon is not convex")
	ErrInvalidRadius     = errors.New("collision: radius must be positive")
	ErrInvalidDensity    = errors.New("collision: density must not be negative")
	ErrZeroScale         = errors.New("collision: transform scale must not be zero")
	ErrNilShape          = errors.New("collision: shape is nil")
)
