package fetch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"newslens/app/config"
	"newslens/app/feed"
)

const maxRSSEntries = 10

func (f *Fetcher) fetchRSS(ctx context.Context, feeds []config.RSSFeed) (feed.Snapshot, error) {
	items := feed.Snapshot{}
	parser := gofeed.NewParser()

	for _, source := range feeds {
		body, err := f.doGet(ctx, source.URL)
		if err != nil {
			slog.Warn("RSS fetch failed", "feed", source.Name, "error", err)
			continue
		}

		parsed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			slog.Warn("RSS parse failed", "feed", source.Name, "error", err)
			continue
		}

		entries := parsed.Items
		if len(entries) > maxRSSEntries {
			entries = entries[:maxRSSEntries]
		}

		for _, entry := range entries {
			item := feed.Item{
				ID:          rssItemID(entry.Link, source.Name),
				Source:      feed.SourceBlog,
				SourceName:  source.Name,
				Title:       entry.Title,
				Description: truncate(strings.TrimSpace(entry.Description), 300),
				URL:         entry.Link,
				Author:      firstAuthor(entry),
				FetchedAt:   now(),
			}
			if entry.PublishedParsed != nil {
				published := entry.PublishedParsed.UTC()
				item.PublishedAt = &published
			}

			items = append(items, item)
		}
	}

	return items, nil
}

func rssItemID(link, feedName string) string {
	sum := sha256.Sum256([]byte(link + feedName))
	return "rss_" + hex.EncodeToString(sum[:8])
}

func firstAuthor(entry *gofeed.Item) string {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	if entry.Author != nil {
		return entry.Author.Name
	}
	return ""
}
