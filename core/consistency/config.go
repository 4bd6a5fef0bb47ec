package consistency

import (
	"fmt"
	"regexp"
)

// locationPattern matches region style names such as "us-east-1".
var locationPattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

// Config holds the probe settings of a run.
type Config struct {
	// Container is the name of the container the run creates, uses and removes.
	Container string `mapstructure:"container" default:"are-we-consistent-yet"`
	// Location is the backend location the container is created in. Empty selects the default.
	Location string `mapstructure:"location" default:""`
	// Iterations is the number of trials per probe.
	Iterations int `mapstructure:"iterations" default:"1"`
	// ObjectSize is the size in bytes of every object written.
	ObjectSize int64 `mapstructure:"object_size" default:"1"`
	// ReaderEndpoint points the read handle at a separate endpoint. Empty reads
	// through the write endpoint.
	ReaderEndpoint string `mapstructure:"reader_endpoint" default:""`
	// IsolatedReader gives the read handle its own store that never receives the
	// writes. Only meaningful for the transient provider.
	IsolatedReader bool `mapstructure:"isolated_reader" default:"false"`
}

// Validate reports settings no run can start with.
func (c Config) Validate() error {
	if c.Container == "" {
		return fmt.Errorf("%w: container name is required", ErrInvalidConfig)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be greater than zero, was: %d", ErrInvalidConfig, c.Iterations)
	}
	if c.ObjectSize < 0 {
		return fmt.Errorf("%w: object size must be at least zero, was: %d", ErrInvalidConfig, c.ObjectSize)
	}
	if c.Location != "" && !locationPattern.MatchString(c.Location) {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, c.Location)
	}
	return nil
}
