package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxIterations caps the iteration count a single API request may ask for.
	MaxIterations int `mapstructure:"max_iterations" default:"10000"`
}

// AllowsIterations reports whether an API request may run n iterations per probe.
func (c Config) AllowsIterations(n int) bool {
	if n <= 0 {
		return false
	}
	return c.MaxIterations <= 0 || n <= c.MaxIterations
}
