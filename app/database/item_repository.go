package database

import (
	"database/sql"
	"fmt"
	"time"

	"newslens/app/feed"
)

var _ ItemRepository = (*SQLItemRepository)(nil)

// SQLItemRepository stores news items in SQLite. Timestamps are persisted
// as RFC3339 text, which sorts chronologically.
type SQLItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *SQLItemRepository {
	return &SQLItemRepository{db: db}
}

func (r *SQLItemRepository) GetItems(source feed.Source) (feed.Snapshot, error) {
	var rows *sql.Rows
	var err error

	if source == "" || source == feed.SourceAll {
		rows, err = r.db.Query(`
			SELECT id, source, source_name, title, description, url, author, published_at, fetched_at
			FROM news ORDER BY published_at DESC`)
	} else {
		rows, err = r.db.Query(`
			SELECT id, source, source_name, title, description, url, author, published_at, fetched_at
			FROM news WHERE source = ? ORDER BY published_at DESC`, string(source))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := feed.Snapshot{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SQLItemRepository) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM news").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *SQLItemRepository) GetCountBySource() (map[feed.Source]int, error) {
	rows, err := r.db.Query("SELECT source, COUNT(*) FROM news GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to count items by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[feed.Source]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[feed.Source(source)] = count
	}

	return counts, rows.Err()
}

func (r *SQLItemRepository) UpsertItems(items feed.Snapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO news
		(id, source, source_name, title, description, url, author, published_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		var publishedAt any
		if item.PublishedAt != nil {
			publishedAt = item.PublishedAt.UTC().Format(time.RFC3339)
		}
		var description, author any
		if item.Description != "" {
			description = item.Description
		}
		if item.Author != "" {
			author = item.Author
		}

		_, err := stmt.Exec(
			item.ID,
			string(item.Source),
			item.SourceName,
			item.Title,
			description,
			item.URL,
			author,
			publishedAt,
			item.FetchedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

func (r *SQLItemRepository) UpdateDescription(itemID string, description string) error {
	_, err := r.db.Exec("UPDATE news SET description = ? WHERE id = ?", description, itemID)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}
	return nil
}

func (r *SQLItemRepository) GetItemsWithoutDescription(limit int) ([]ItemWithoutDescription, error) {
	rows, err := r.db.Query(`
		SELECT id, url FROM news
		WHERE description IS NULL OR description = ''
		ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query items without description: %w", err)
	}
	defer rows.Close()

	var items []ItemWithoutDescription
	for rows.Next() {
		var item ItemWithoutDescription
		if err := rows.Scan(&item.ID, &item.URL); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SQLItemRepository) DeleteOlderThan(cutoff time.Time) (int, error) {
	result, err := r.db.Exec("DELETE FROM news WHERE fetched_at < ?", cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old items: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(deleted), nil
}

func scanItem(rows *sql.Rows) (feed.Item, error) {
	var item feed.Item
	var source string
	var description, author, publishedAt sql.NullString
	var fetchedAt string

	err := rows.Scan(&item.ID, &source, &item.SourceName, &item.Title,
		&description, &item.URL, &author, &publishedAt, &fetchedAt)
	if err != nil {
		return feed.Item{}, fmt.Errorf("failed to scan item row: %w", err)
	}

	item.Source = feed.Source(source)
	item.Description = description.String
	item.Author = author.String

	if publishedAt.Valid && publishedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, publishedAt.String); err == nil {
			item.PublishedAt = &t
		}
	}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		item.FetchedAt = t
	}

	return item, nil
}
