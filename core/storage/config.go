package storage

import "strings"

const (
	// ProviderS3 talks to any S3-compatible endpoint (AWS, MinIO, Ceph RGW, ...).
	ProviderS3 = "s3"
	// ProviderTransient serves an in-process, in-memory S3 endpoint.
	ProviderTransient = "transient"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the backend: "s3" or "transient".
	Provider string `mapstructure:"provider" default:"s3"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location requests are signed for (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the number of names requested per listing page.
	PageSize int `mapstructure:"page_size" default:"1000"`
}

// IsValidProvider checks if the configured provider is supported.
func (c Config) IsValidProvider() bool {
	switch c.Provider {
	case ProviderS3, ProviderTransient:
		return true
	default:
		return false
	}
}

// Host returns the endpoint without scheme or trailing slash.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	host = strings.TrimPrefix(host, "https://")
	return strings.TrimSuffix(host, "/")
}

// Secure reports whether connections use TLS. A scheme on the endpoint
// overrides UseSSL.
func (c Config) Secure() bool {
	switch {
	case strings.HasPrefix(c.Endpoint, "https://"):
		return true
	case strings.HasPrefix(c.Endpoint, "http://"):
		return false
	default:
		return c.UseSSL
	}
}
