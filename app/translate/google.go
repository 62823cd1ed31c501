package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newslens/app/feed"
)

const DefaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator translates text through the public Google translate
// endpoint. Items are translated one by one; an item that fails keeps its
// original text so the batch as a whole still succeeds.
type GoogleTranslator struct {
	endpoint   string
	httpClient *http.Client
}

func NewGoogleTranslator(endpoint string) *GoogleTranslator {
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	return &GoogleTranslator{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *GoogleTranslator) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	out := make([]feed.Item, len(items))

	for i, item := range items {
		translated := item

		if item.Title != "" {
			title, err := g.translateText(ctx, item.Title, targetLang)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				slog.Warn("Title translation failed, keeping original", "url", item.URL, "error", err)
			} else {
				translated.Title = title
			}
		}

		if item.Description != "" {
			description, err := g.translateText(ctx, item.Description, targetLang)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				slog.Warn("Description translation failed, keeping original", "url", item.URL, "error", err)
			} else {
				translated.Description = description
			}
		}

		out[i] = translated
	}

	return out, nil
}

func (g *GoogleTranslator) translateText(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the translated text from the endpoint's
// nested-array payload: [[["перевод","translation",...], ...], ...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty response payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("failed to parse segments: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated text in response")
	}
	return sb.String(), nil
}
