package body

import "errors"

var (
	ErrNilShape     = errors.New("body: shape is nil")
	ErrInvalidScale = errors.New("body: scale must be non-zero")
)
