package view

import (
	"time"

	"github.com/samber/lo"

	"newslens/app/feed"
	"newslens/app/state"
)

// RenderItem is one feed card ready for a markup rendering target: all text
// fields are escaped, optional fields are empty when absent.
type RenderItem struct {
	Source      feed.Source
	SourceBadge string
	SourceName  string
	Title       string
	Description string
	Author      string
	TimeLabel   string
	URL         string
}

// Projection is the renderable view of the display snapshot.
type Projection struct {
	Items        []RenderItem
	Empty        bool
	EmptyMessage string
}

var sourceBadges = map[feed.Source]string{
	feed.SourceReddit:     "Reddit",
	feed.SourceHackerNews: "HN",
	feed.SourceBlog:       "Blog",
	feed.SourceArxiv:      "arXiv",
}

// Project derives the filtered, locale-formatted render list from a display
// snapshot. It is a pure function of its arguments: it never mutates the
// snapshot and owns no state.
func Project(snapshot feed.Snapshot, filter feed.Source, locale state.Locale, now time.Time) Projection {
	filtered := lo.Filter(snapshot, func(item feed.Item, _ int) bool {
		return filter == feed.SourceAll || item.Source == filter
	})

	if len(filtered) == 0 {
		return Projection{
			Empty:        true,
			EmptyMessage: localized(locale).emptyFeed,
		}
	}

	items := lo.Map(filtered, func(item feed.Item, _ int) RenderItem {
		return renderItem(item, locale, now)
	})

	return Projection{Items: items}
}

func renderItem(item feed.Item, locale state.Locale, now time.Time) RenderItem {
	badge, ok := sourceBadges[item.Source]
	if !ok {
		badge = string(item.Source)
	}

	return RenderItem{
		Source:      item.Source,
		SourceBadge: badge,
		SourceName:  EscapeText(item.SourceName),
		Title:       EscapeText(item.Title),
		Description: EscapeText(item.Description),
		Author:      EscapeText(item.Author),
		TimeLabel:   RelativeTime(item.Timestamp(), locale, now),
		URL:         item.URL,
	}
}
