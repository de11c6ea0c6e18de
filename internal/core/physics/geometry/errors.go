package geometry

import "errors"

var (
	ErrZeroVector     = errors.New("geometry: normalize of zero-length vector")
	ErrInvalidSides   = errors.New("geometry: regular polygon needs at least 3 sides")
	ErrInvalidExtents = errors.New("geometry: extents must be positive")
)
