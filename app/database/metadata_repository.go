package database

import (
	"database/sql"
	"fmt"
	"time"
)

const lastUpdatedKey = "last_updated"

var _ MetadataRepository = (*SQLMetadataRepository)(nil)

type SQLMetadataRepository struct {
	db *DB
}

func NewMetadataRepository(db *DB) *SQLMetadataRepository {
	return &SQLMetadataRepository{db: db}
}

// GetLastUpdated returns the time of the last successful refresh, or nil
// when no refresh has happened yet.
func (r *SQLMetadataRepository) GetLastUpdated() (*time.Time, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM metadata WHERE key = ?", lastUpdatedKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last updated: %w", err)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, nil
	}
	return &t, nil
}

func (r *SQLMetadataRepository) SetLastUpdated(t time.Time) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)",
		lastUpdatedKey, t.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to set last updated: %w", err)
	}
	return nil
}
