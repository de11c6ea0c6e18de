package physics

import "errors"

var (
	ErrInvalidIterations     = errors.New("physics: iterations must be at least 1")
	ErrInvalidTimeStep       = errors.New("physics: time step must be positive and finite")
	ErrInvalidPPM            = errors.New("physics: pixels per meter must be positive")
	ErrBodyAlreadyRegistered = errors.New("physics: body already registered")
	ErrBodyNotFound          = errors.New("physics: body not found")
	ErrSensorNotFound        = errors.New("physics: sensor not found")
	ErrNilBody               = errors.New("physics: body is nil")
)
