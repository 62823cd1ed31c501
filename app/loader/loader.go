package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"newslens/app/client"
	"newslens/app/feed"
	"newslens/app/state"
	"newslens/app/translate"
)

// ErrSuperseded is returned when a newer load or translate operation started
// while this one was in flight; its result was discarded.
var ErrSuperseded = errors.New("superseded by a newer operation")

// NewsFetcher is the part of the server API the loader needs.
type NewsFetcher interface {
	GetNews(ctx context.Context, force bool) (*client.NewsResponse, error)
}

var _ NewsFetcher = (*client.Client)(nil)

// Loader drives the load-then-translate pipeline: fetch a snapshot from the
// server, install it in the state store, and translate it when the active
// locale calls for that. Every operation runs under a generation token so a
// slow response can never overwrite the result of a newer one.
type Loader struct {
	fetcher NewsFetcher
	store   *state.Store
	batcher *translate.Batcher
}

func New(fetcher NewsFetcher, store *state.Store, batcher *translate.Batcher) *Loader {
	return &Loader{
		fetcher: fetcher,
		store:   store,
		batcher: batcher,
	}
}

// Load fetches the feed and installs it as both original and display
// snapshot, then translates the display when the locale requires it. A fetch
// failure leaves the state store untouched. onProgress reports translation
// progress and may be nil.
func (l *Loader) Load(ctx context.Context, force bool, onProgress translate.ProgressFunc) error {
	gen := l.store.BeginUpdate()

	resp, err := l.fetcher.GetNews(ctx, force)
	if err != nil {
		return fmt.Errorf("failed to load news: %w", err)
	}

	snapshot := feed.Snapshot(resp.Items)
	if snapshot == nil {
		snapshot = feed.Snapshot{}
	}

	if !l.store.SetSnapshots(gen, snapshot) {
		return ErrSuperseded
	}

	if !l.store.Locale().NeedsTranslation() {
		return nil
	}
	return l.translateUnder(ctx, gen, snapshot, onProgress)
}

// Translate re-derives the display snapshot from the original for the
// current locale. Called after a locale switch to a language that needs
// translation.
func (l *Loader) Translate(ctx context.Context, onProgress translate.ProgressFunc) error {
	gen := l.store.BeginUpdate()
	return l.translateUnder(ctx, gen, l.store.Original(), onProgress)
}

func (l *Loader) translateUnder(ctx context.Context, gen state.Generation, source feed.Snapshot, onProgress translate.ProgressFunc) error {
	targetLang := string(l.store.Locale())

	translated, result := l.batcher.Run(ctx, source, targetLang, onProgress)
	if result.Failed() {
		slog.Warn("Translation produced no translated items, displaying originals",
			"total", result.Total, "failed_batches", len(result.FailedBatches))
	}

	if !l.store.SetDisplay(gen, translated) {
		return ErrSuperseded
	}
	return nil
}
