package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newslens/app/config"
	"newslens/app/feed"
)

func testFetcher() *Fetcher {
	return NewFetcher(&http.Client{Timeout: 5 * time.Second}, "newslens-test/1.0")
}

func TestFetchReddit_ItemMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/r/golang/hot.json") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "newslens-test/1.0" {
			t.Errorf("Expected custom user agent, got %q", ua)
		}
		w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc1","title":"Go 1.25 released","selftext":"Release notes","permalink":"/r/golang/comments/abc1/","author":"gopher","created_utc":1735689600}}
		]}}`))
	}))
	defer server.Close()

	f := testFetcher()
	f.redditBaseURL = server.URL

	items, err := f.fetchReddit(context.Background(), []string{"golang"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != "reddit_abc1" {
		t.Errorf("Unexpected ID: %s", item.ID)
	}
	if item.Source != feed.SourceReddit || item.SourceName != "r/golang" {
		t.Errorf("Unexpected source fields: %s, %s", item.Source, item.SourceName)
	}
	if !strings.HasSuffix(item.URL, "/r/golang/comments/abc1/") {
		t.Errorf("Unexpected URL: %s", item.URL)
	}
	if item.PublishedAt == nil || item.PublishedAt.Year() != 2025 {
		t.Errorf("Unexpected published time: %v", item.PublishedAt)
	}
}

func TestFetchHackerNews_DedupAndFallbackURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[
			{"objectID":"101","title":"Story with URL","url":"https://example.com/story","author":"alice","created_at":"2025-06-01T10:00:00Z"},
			{"objectID":"102","title":"Ask HN: no URL","url":"","author":"bob","created_at":"2025-06-01T11:00:00Z"},
			{"objectID":"101","title":"Duplicate","url":"https://example.com/story","author":"alice","created_at":"2025-06-01T10:00:00Z"}
		]}`))
	}))
	defer server.Close()

	f := testFetcher()
	f.algoliaURL = server.URL

	items, err := f.fetchHackerNews(context.Background(), []string{"AI"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items after dedup, got %d", len(items))
	}
	if items[1].URL != hnItemURL+"102" {
		t.Errorf("Expected discussion-page fallback URL, got %s", items[1].URL)
	}
	if items[0].Source != feed.SourceHackerNews || items[0].SourceName != "Hacker News" {
		t.Errorf("Unexpected source fields: %s, %s", items[0].Source, items[0].SourceName)
	}
}

func TestFetchRSS_ItemMapping(t *testing.T) {
	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Example Blog</title>
  <item>
    <title>First post</title>
    <link>https://example.com/first</link>
    <description>Hello world</description>
    <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
  </item>
</channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	f := testFetcher()
	got, err := f.fetchRSS(context.Background(), []config.RSSFeed{{Name: "Example Blog", URL: server.URL}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(got))
	}

	item := got[0]
	if item.Source != feed.SourceBlog || item.SourceName != "Example Blog" {
		t.Errorf("Unexpected source fields: %s, %s", item.Source, item.SourceName)
	}
	if !strings.HasPrefix(item.ID, "rss_") {
		t.Errorf("Unexpected ID: %s", item.ID)
	}
	if item.Description != "Hello world" {
		t.Errorf("Unexpected description: %q", item.Description)
	}
	if item.PublishedAt == nil {
		t.Error("Expected published time to be parsed")
	}
}

func TestRun_FailingSourceIsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := testFetcher()
	f.redditBaseURL = server.URL
	f.algoliaURL = server.URL
	f.arxivURL = server.URL

	// Every upstream is broken; the refresh still completes with an empty
	// snapshot instead of failing.
	items := f.Run(context.Background(), config.Config{
		Subreddits:         []string{"golang"},
		HackerNewsKeywords: []string{"AI"},
	})
	if len(items) != 0 {
		t.Errorf("Expected empty snapshot, got %d items", len(items))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("Short strings must pass through, got %q", got)
	}
	if got := truncate("hello world", 5); got != "hello" {
		t.Errorf("Expected 5-rune prefix, got %q", got)
	}
	// Rune-safe truncation of multibyte text.
	if got := truncate("привет мир", 6); got != "привет" {
		t.Errorf("Expected rune-safe truncation, got %q", got)
	}
}
