package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"newslens/app/feed"
)

const arxivQueryURL = "https://export.arxiv.org/api/query" +
	"?search_query=cat:cs.AI+OR+cat:cs.LG&start=0&max_results=20" +
	"&sortBy=submittedDate&sortOrder=descending"

func (f *Fetcher) fetchArxiv(ctx context.Context) (feed.Snapshot, error) {
	body, err := f.doGet(ctx, f.arxivURL)
	if err != nil {
		return nil, fmt.Errorf("arXiv fetch failed: %w", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("arXiv parse failed: %w", err)
	}

	items := feed.Snapshot{}
	for _, entry := range parsed.Items {
		item := feed.Item{
			ID:          arxivItemID(entry.GUID, entry.Link),
			Source:      feed.SourceArxiv,
			SourceName:  "arXiv",
			Title:       flatten(entry.Title),
			Description: truncate(flatten(entry.Description), 400),
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

	return items, nil
}

// arxivItemID derives a stable id from the entry's arXiv identifier URL,
// e.g. http://arxiv.org/abs/2501.01234v1 -> arxiv_2501.01234v1.
func arxivItemID(guid, link string) string {
	ref := guid
	if ref == "" {
		ref = link
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		ref = ref[idx+1:]
	}
	return "arxiv_" + ref
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
