package scene

import "errors"

var (
	ErrUnknownShape      = errors.New("scene: unknown shape type")
	ErrInvalidScene      = errors.New("scene: invalid scene")
	ErrUnsupportedFormat = errors.New("scene: unsupported file format")
)
