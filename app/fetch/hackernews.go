package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"newslens/app/feed"
)

const (
	algoliaSearchURL = "https://hn.algolia.com/api/v1/search_by_date"
	hnItemURL        = "https://news.ycombinator.com/item?id="

	// Bound on the number of keyword queries per refresh, to stay polite
	// towards the Algolia API.
	maxHNKeywords = 3
)

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

type algoliaHit struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

func (f *Fetcher) fetchHackerNews(ctx context.Context, keywords []string) (feed.Snapshot, error) {
	items := feed.Snapshot{}
	seen := make(map[string]bool)

	if len(keywords) > maxHNKeywords {
		keywords = keywords[:maxHNKeywords]
	}

	for _, keyword := range keywords {
		query := fmt.Sprintf("%s?query=%s&tags=story&hitsPerPage=10",
			f.algoliaURL, url.QueryEscape(keyword))

		body, err := f.doGet(ctx, query)
		if err != nil {
			slog.Warn("Hacker News fetch failed", "keyword", keyword, "error", err)
			continue
		}

		var resp algoliaResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			slog.Warn("Hacker News response parse failed", "keyword", keyword, "error", err)
			continue
		}

		for _, hit := range resp.Hits {
			id := "hn_" + hit.ObjectID
			if seen[id] {
				continue
			}
			seen[id] = true

			itemURL := hit.URL
			if itemURL == "" {
				itemURL = hnItemURL + hit.ObjectID
			}

			item := feed.Item{
				ID:         id,
				Source:     feed.SourceHackerNews,
				SourceName: "Hacker News",
				Title:      hit.Title,
				URL:        itemURL,
				Author:     hit.Author,
				FetchedAt:  now(),
			}
			if published, err := time.Parse(time.RFC3339, hit.CreatedAt); err == nil {
				published = published.UTC()
				item.PublishedAt = &published
			}

			items = append(items, item)
		}
	}

	return items, nil
}
