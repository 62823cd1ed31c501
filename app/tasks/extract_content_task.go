package tasks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newslens/app/database"
)

const (
	extractBatchLimit   = 10
	extractFetchTimeout = 15 * time.Second
	maxDescriptionRunes = 300
	maxArticleBodyBytes = 2 << 20
)

// ExtractContentTask backfills missing item descriptions by fetching the
// article page and extracting its readable text.
type ExtractContentTask struct {
	Task
	httpClient *http.Client
	itemRepo   database.ItemRepository
	userAgent  string
}

func NewExtractContentTask(httpClient *http.Client, itemRepo database.ItemRepository, userAgent string) *ExtractContentTask {
	return &ExtractContentTask{
		Task:       NewTask(TaskTypeExtractContent),
		httpClient: httpClient,
		itemRepo:   itemRepo,
		userAgent:  userAgent,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := t.itemRepo.GetItemsWithoutDescription(extractBatchLimit)
	if err != nil {
		return fmt.Errorf("failed to get items for content extraction: %w", err)
	}

	if len(items) == 0 {
		slog.Debug("No items need content extraction")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		extractCtx, cancel := context.WithTimeout(ctx, extractFetchTimeout)
		err := t.extractDescription(extractCtx, item)
		cancel()

		if err != nil {
			slog.Debug("Failed to extract content for item", "item_id", item.ID, "url", item.URL, "error", err)
			errorCount++
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractDescription(ctx context.Context, item database.ItemWithoutDescription) error {
	if item.URL == "" {
		return fmt.Errorf("item has no URL")
	}

	pageURL, err := url.Parse(item.URL)
	if err != nil {
		return fmt.Errorf("invalid item URL: %w", err)
	}

	data, err := t.fetchArticle(ctx, item.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch article: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return fmt.Errorf("no readable text found")
	}
	text = truncateRunes(text, maxDescriptionRunes)

	if err := t.itemRepo.UpdateDescription(item.ID, text); err != nil {
		return fmt.Errorf("failed to store description: %w", err)
	}

	slog.Debug("Description extracted", "item_id", item.ID, "url", item.URL, "length", len(text))
	return nil
}

func (t *ExtractContentTask) fetchArticle(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
