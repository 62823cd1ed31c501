package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newslens/app/config"
	"newslens/app/feed"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	defaultTimeout = 30 * time.Second
)

// Client talks to the newslens server API. It implements
// translate.Translator so the reader's batcher can delegate translation to
// the server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewsResponse is the payload of GET /api/news.
type NewsResponse struct {
	Items       []feed.Item `json:"items"`
	Count       int         `json:"count"`
	LastUpdated *time.Time  `json:"last_updated,omitempty"`
}

// StatsResponse is the payload of GET /api/stats.
type StatsResponse struct {
	Total       int            `json:"total"`
	BySource    map[string]int `json:"by_source"`
	LastUpdated *time.Time     `json:"last_updated,omitempty"`
}

type translateRequest struct {
	Items      []feed.Item `json:"items"`
	TargetLang string      `json:"target_lang"`
}

type translateResponse struct {
	Items []feed.Item `json:"items"`
}

// GetNews fetches the current feed. With force set the server refreshes all
// sources before responding instead of serving what it has cached.
func (c *Client) GetNews(ctx context.Context, force bool) (*NewsResponse, error) {
	url := c.baseURL + "/api/news"
	if force {
		url += "?force=true"
	}

	var resp NewsResponse
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh asks the server to re-fetch all sources immediately.
func (c *Client) Refresh(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/refresh", nil, nil)
}

// TranslateBatch implements translate.Translator over the server API.
func (c *Client) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	req := translateRequest{Items: items, TargetLang: targetLang}

	var resp translateResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/translate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) GetConfig(ctx context.Context) (config.Config, error) {
	var cfg config.Config
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/api/config", nil, &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (c *Client) SaveConfig(ctx context.Context, cfg config.Config) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/config", cfg, nil)
}

func (c *Client) GetPreset(ctx context.Context) (config.Config, error) {
	var cfg config.Config
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/api/config/preset", nil, &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (c *Client) GetStats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/api/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, reqBody, respBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to serialize request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
