package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"newslens/app/config"
	"newslens/app/feed"
)

// Fetcher aggregates news items from all configured sources. Sources are
// queried concurrently; a failing source is logged and skipped so one dead
// upstream never empties the whole feed.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string

	// Upstream endpoints, overridable in tests.
	redditBaseURL string
	algoliaURL    string
	arxivURL      string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient:    httpClient,
		userAgent:     userAgent,
		redditBaseURL: redditBaseURL,
		algoliaURL:    algoliaSearchURL,
		arxivURL:      arxivQueryURL,
	}
}

func (f *Fetcher) Run(ctx context.Context, cfg config.Config) feed.Snapshot {
	type sourceRun struct {
		name string
		run  func(context.Context) (feed.Snapshot, error)
	}

	runs := []sourceRun{
		{"reddit", func(ctx context.Context) (feed.Snapshot, error) {
			return f.fetchReddit(ctx, cfg.Subreddits)
		}},
		{"hackernews", func(ctx context.Context) (feed.Snapshot, error) {
			return f.fetchHackerNews(ctx, cfg.HackerNewsKeywords)
		}},
		{"rss", func(ctx context.Context) (feed.Snapshot, error) {
			return f.fetchRSS(ctx, cfg.RSSFeeds)
		}},
		{"arxiv", f.fetchArxiv},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(map[string]feed.Snapshot, len(runs))

	for _, source := range runs {
		wg.Add(1)
		go func(source sourceRun) {
			defer wg.Done()

			items, err := source.run(ctx)
			if err != nil {
				slog.Warn("Source fetch failed", "source", source.name, "error", err)
				return
			}

			mu.Lock()
			results[source.name] = items
			mu.Unlock()
		}(source)
	}
	wg.Wait()

	// Deterministic concatenation order regardless of goroutine timing.
	all := feed.Snapshot{}
	for _, source := range runs {
		all = append(all, results[source.name]...)
	}

	slog.Info("Fetched all sources", "total", len(all))
	return all
}

// doGet fetches a URL with the configured user agent, retrying transient
// failures with capped exponential backoff.
func (f *Fetcher) doGet(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func now() time.Time {
	return time.Now().UTC()
}
