package runs

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const defaultListLimit = 50

// Store persists run records.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the runs table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&RunRecord{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", RunRecord{}.TableName(), err)
	}
	return nil
}

// Save inserts rec and fills its ID and CreatedAt.
func (s *Store) Save(ctx context.Context, rec *RunRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var runs []RunRecord
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with id, or ErrRunNotFound.
func (s *Store) Get(ctx context.Context, id uint) (*RunRecord, error) {
	var run RunRecord
	err := s.db.WithContext(ctx).First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	return &run, nil
}
