package runs

import "errors"

var (
	// ErrRunInProgress is returned when a run is requested while another is executing.
	ErrRunInProgress = errors.New("a consistency run is already in progress")
	// ErrRunNotFound is returned when a stored run does not exist.
	ErrRunNotFound = errors.New("run not found")
	// ErrHistoryDisabled is returned by history queries when no database is configured.
	ErrHistoryDisabled = errors.New("run history is disabled")
)
