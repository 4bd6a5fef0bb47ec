package config

import (
	"fmt"
	"reflect"
	"strings"

	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/database"
	"are-we-consistent-yet/core/logger"
	"are-we-consistent-yet/core/server"
	"are-we-consistent-yet/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Storage holds configuration for the object storage backend under test.
	Storage storage.Config `mapstructure:"storage"`
	// Probe holds the settings of a consistency run.
	Probe consistency.Config `mapstructure:"probe"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
}

// legacyKeys maps jclouds property names, as used by existing properties files,
// onto configuration keys.
var legacyKeys = map[string]string{
	"jclouds.provider":   "storage.provider",
	"jclouds.identity":   "storage.access_key",
	"jclouds.credential": "storage.secret_key",
	"jclouds.endpoint":   "storage.endpoint",
	"jclouds.region":     "storage.region",
}

// awsEndpoint is used for the jclouds aws-s3 provider when no endpoint is given.
const awsEndpoint = "s3.amazonaws.com"

// legacyProviders maps jclouds provider ids onto storage providers.
var legacyProviders = map[string]string{
	"transient": storage.ProviderTransient,
	"aws-s3":    storage.ProviderS3,
	"s3":        storage.ProviderS3,
}

// LoadConfig loads configuration from environment variables, a .env file in path
// and, when propertiesFile is not empty, a Java-style properties file.
// Precedence is: environment, properties file, defaults.
func LoadConfig(path, propertiesFile string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	if propertiesFile != "" {
		v.SetConfigFile(propertiesFile)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read properties file %s: %w", propertiesFile, err)
		}
		applyLegacyKeys(v)
	}

	// Map environment variables to nested keys (e.g. STORAGE_ENDPOINT -> storage.endpoint)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports configuration errors that would otherwise only show up mid-run.
func (c *Config) Validate() error {
	if !c.Storage.IsValidProvider() {
		return fmt.Errorf("unsupported storage provider %q", c.Storage.Provider)
	}
	if err := c.Probe.Validate(); err != nil {
		return err
	}
	if c.Probe.IsolatedReader && c.Storage.Provider != storage.ProviderTransient {
		return fmt.Errorf("isolated reader requires the %s provider", storage.ProviderTransient)
	}
	return nil
}

// applyLegacyKeys copies jclouds-named properties onto their configuration keys.
// They are registered as defaults so native keys and environment variables win.
func applyLegacyKeys(v *viper.Viper) {
	for legacy, key := range legacyKeys {
		if !v.InConfig(legacy) || v.InConfig(key) {
			continue
		}
		value := v.GetString(legacy)
		if legacy == "jclouds.provider" {
			if provider, ok := legacyProviders[value]; ok {
				value = provider
			}
		}
		v.SetDefault(key, value)
	}

	// jclouds knows the aws-s3 endpoint; an aws-s3 file usually does not name one.
	if v.GetString("jclouds.provider") == "aws-s3" && !v.InConfig("jclouds.endpoint") && !v.InConfig("storage.endpoint") {
		v.SetDefault("storage.endpoint", awsEndpoint)
		if !v.InConfig("storage.use_ssl") {
			v.SetDefault("storage.use_ssl", true)
		}
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
