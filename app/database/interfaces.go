package database

import (
	"time"

	"newslens/app/feed"
)

// ItemWithoutDescription identifies a stored item whose description is still
// missing, for the content extraction task.
type ItemWithoutDescription struct {
	ID  string
	URL string
}

type ItemRepository interface {
	GetItems(source feed.Source) (feed.Snapshot, error)
	GetItemCount() (int, error)
	GetCountBySource() (map[feed.Source]int, error)

	UpsertItems(items feed.Snapshot) error
	UpdateDescription(itemID string, description string) error

	GetItemsWithoutDescription(limit int) ([]ItemWithoutDescription, error)
	DeleteOlderThan(cutoff time.Time) (int, error)
}

type MetadataRepository interface {
	GetLastUpdated() (*time.Time, error)
	SetLastUpdated(t time.Time) error
}
