// Package database handles the optional run history database.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections from
// the application's configuration. When enabled, every consistency report is
// stored so runs against the same backend can be compared over time.
//
// # Connect
//
// Connect opens the database, applies pool limits and verifies the connection with
// a ping bounded by the configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
