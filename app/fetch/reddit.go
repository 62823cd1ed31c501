package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"newslens/app/feed"
)

const redditBaseURL = "https://www.reddit.com"

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
}

func (f *Fetcher) fetchReddit(ctx context.Context, subreddits []string) (feed.Snapshot, error) {
	items := feed.Snapshot{}

	for _, subreddit := range subreddits {
		url := fmt.Sprintf("%s/r/%s/hot.json?limit=10", f.redditBaseURL, subreddit)

		body, err := f.doGet(ctx, url)
		if err != nil {
			slog.Warn("Reddit fetch failed", "subreddit", subreddit, "error", err)
			continue
		}

		var listing redditListing
		if err := json.Unmarshal(body, &listing); err != nil {
			slog.Warn("Reddit response parse failed", "subreddit", subreddit, "error", err)
			continue
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			published := time.Unix(int64(post.CreatedUTC), 0).UTC()

			items = append(items, feed.Item{
				ID:          "reddit_" + post.ID,
				Source:      feed.SourceReddit,
				SourceName:  "r/" + subreddit,
				Title:       post.Title,
				Description: truncate(post.Selftext, 300),
				URL:         f.redditBaseURL + post.Permalink,
				Author:      post.Author,
				PublishedAt: &published,
				FetchedAt:   now(),
			})
		}
	}

	return items, nil
}
