package feed

import (
	"time"
)

// Source identifies where a news item came from.
type Source string

const (
	SourceAll        Source = "all"
	SourceReddit     Source = "reddit"
	SourceHackerNews Source = "hackernews"
	SourceBlog       Source = "blog"
	SourceArxiv      Source = "arxiv"
)

// Sources lists the concrete source kinds, excluding the "all" pseudo-source.
var Sources = []Source{SourceReddit, SourceHackerNews, SourceBlog, SourceArxiv}

func (s Source) Valid() bool {
	switch s {
	case SourceAll, SourceReddit, SourceHackerNews, SourceBlog, SourceArxiv:
		return true
	}
	return false
}

// Item is a single news entry. Items are immutable once produced: translation
// derives new items, it never mutates existing ones.
type Item struct {
	ID          string     `json:"id"`
	Source      Source     `json:"source"`
	SourceName  string     `json:"source_name"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
}

// Timestamp returns the time an item should be presented with: the publish
// time when the source provided one, otherwise the fetch time.
func (i Item) Timestamp() time.Time {
	if i.PublishedAt != nil {
		return *i.PublishedAt
	}
	return i.FetchedAt
}

// Snapshot is an ordered sequence of items produced by one fetch. Order is
// fetch order and must be preserved unless explicitly re-sorted.
type Snapshot []Item
