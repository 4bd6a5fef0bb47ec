package consistency

import "errors"

var (
	// ErrInvalidConfig is returned when a runner or payload is built with unusable parameters.
	ErrInvalidConfig = errors.New("invalid consistency configuration")
	// ErrPaginationStalled is returned when a backend keeps reporting a truncated
	// listing without advancing its continuation marker.
	ErrPaginationStalled = errors.New("listing pagination did not advance")
	// ErrUnknownLocation is returned when a container location is malformed or
	// not offered by the backend.
	ErrUnknownLocation = errors.New("could not find location")
)
