// Package config provides configuration management for are-we-consistent-yet.
//
// It utilizes Viper for loading configuration from environment variables, an optional
// .env file, and an optional Java-style properties file read through a
// magiconair/properties codec. jclouds.* key names are accepted as aliases.
//
// # Configuration Structure
//
//   - Storage: provider, endpoint, credentials, region, timeouts, listing page size
//   - Probe: container, location, iterations, object size, reader endpoint
//   - Log: logging level and format
//   - Database: optional run history connection
//   - Server: HTTP API port, API key and iteration cap
//
// Command-line flags are applied by the cmd package on top of the loaded values.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", "s3.properties")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Endpoint)
package config
