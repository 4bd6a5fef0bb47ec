package cmd

import (
	"fmt"

	"are-we-consistent-yet/core/config"
	"are-we-consistent-yet/core/database"
	"are-we-consistent-yet/feature/runs"
)

// openHistory connects to the run history database and migrates it.
func openHistory(cfg *config.Config) (*runs.Store, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	store := runs.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
