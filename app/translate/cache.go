package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"newslens/app/feed"
)

const cacheTTL = 24 * time.Hour

type cachedText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// CachedTranslator caches translated text in Redis in front of another
// Translator. Cache entries are keyed by a hash of the source text and the
// target language, so a re-fetched feed reuses earlier translations.
type CachedTranslator struct {
	inner  Translator
	client *redis.Client
}

func NewCachedTranslator(inner Translator, addr string) (*CachedTranslator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CachedTranslator{inner: inner, client: client}, nil
}

func (c *CachedTranslator) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	out := make([]feed.Item, len(items))
	missIdx := make([]int, 0, len(items))
	misses := make([]feed.Item, 0, len(items))

	for i, item := range items {
		if cached, ok := c.get(ctx, item, targetLang); ok {
			translated := item
			translated.Title = cached.Title
			translated.Description = cached.Description
			translated.Author = cached.Author
			out[i] = translated
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, item)
	}

	if len(misses) == 0 {
		return out, nil
	}

	translated, err := c.inner.TranslateBatch(ctx, misses, targetLang)
	if err != nil {
		return nil, err
	}
	if len(translated) != len(misses) {
		return nil, &ContractViolationError{Sent: len(misses), Received: len(translated)}
	}

	for j, i := range missIdx {
		out[i] = translated[j]
		c.set(ctx, items[i], targetLang, translated[j])
	}

	return out, nil
}

func (c *CachedTranslator) Close() error {
	return c.client.Close()
}

func (c *CachedTranslator) get(ctx context.Context, item feed.Item, targetLang string) (cachedText, bool) {
	val, err := c.client.Get(ctx, cacheKey(item, targetLang)).Result()
	if err == redis.Nil {
		return cachedText{}, false
	}
	if err != nil {
		slog.Debug("Translation cache read failed", "error", err)
		return cachedText{}, false
	}

	var cached cachedText
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return cachedText{}, false
	}
	return cached, true
}

func (c *CachedTranslator) set(ctx context.Context, item feed.Item, targetLang string, translated feed.Item) {
	data, err := json.Marshal(cachedText{
		Title:       translated.Title,
		Description: translated.Description,
		Author:      translated.Author,
	})
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, cacheKey(item, targetLang), data, cacheTTL).Err(); err != nil {
		slog.Debug("Translation cache write failed", "error", err)
	}
}

func cacheKey(item feed.Item, targetLang string) string {
	sum := sha256.Sum256([]byte(item.Title + "|" + item.Description + "|" + item.Author))
	return fmt.Sprintf("translate:%s:%s", targetLang, hex.EncodeToString(sum[:16]))
}
