package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"newslens/app/client"
	"newslens/app/feed"
	"newslens/app/state"
	"newslens/app/translate"
)

type stubFetcher struct {
	items   []feed.Item
	err     error
	calls   int
	onFetch func()
}

func (f *stubFetcher) GetNews(ctx context.Context, force bool) (*client.NewsResponse, error) {
	f.calls++
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &client.NewsResponse{Items: f.items, Count: len(f.items)}, nil
}

type prefixTranslator struct {
	calls int
	err   error
}

func (t *prefixTranslator) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	out := make([]feed.Item, len(items))
	for i, item := range items {
		item.Title = targetLang + ":" + item.Title
		out[i] = item
	}
	return out, nil
}

func sampleItems(n int) []feed.Item {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	items := make([]feed.Item, n)
	for i := range items {
		items[i] = feed.Item{
			ID:        string(rune('a' + i)),
			Source:    feed.SourceReddit,
			Title:     "Post " + string(rune('a'+i)),
			URL:       "http://example.com/" + string(rune('a'+i)),
			FetchedAt: now,
		}
	}
	return items
}

func newLoader(fetcher *stubFetcher, translator translate.Translator, locale state.Locale) (*Loader, *state.Store) {
	store := state.NewStore(locale, state.ThemeDark)
	return New(fetcher, store, translate.NewBatcher(translator)), store
}

func TestLoad_EnglishSkipsTranslation(t *testing.T) {
	translator := &prefixTranslator{}
	l, store := newLoader(&stubFetcher{items: sampleItems(3)}, translator, state.LocaleEN)

	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if translator.calls != 0 {
		t.Errorf("English locale should not translate, got %d calls", translator.calls)
	}
	display := store.Display()
	if len(display) != 3 || display[0].Title != "Post a" {
		t.Errorf("Display should hold originals, got %+v", display)
	}
}

func TestLoad_RussianTranslatesDisplay(t *testing.T) {
	l, store := newLoader(&stubFetcher{items: sampleItems(3)}, &prefixTranslator{}, state.LocaleRU)

	var progress []int
	err := l.Load(context.Background(), false, func(percent int) {
		progress = append(progress, percent)
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Original()[0].Title != "Post a" {
		t.Error("Original snapshot must stay untranslated")
	}
	if store.Display()[0].Title != "ru:Post a" {
		t.Errorf("Display should be translated, got %q", store.Display()[0].Title)
	}
	if len(progress) != 1 || progress[0] != 100 {
		t.Errorf("Expected a single 100%% progress call, got %v", progress)
	}
}

func TestLoad_NilPayloadBecomesEmptySnapshot(t *testing.T) {
	l, store := newLoader(&stubFetcher{items: nil}, &prefixTranslator{}, state.LocaleEN)

	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if display := store.Display(); display == nil || len(display) != 0 {
		t.Errorf("Expected empty snapshot, got %#v", display)
	}
}

func TestLoad_FetchErrorLeavesStateUntouched(t *testing.T) {
	fetcher := &stubFetcher{items: sampleItems(2)}
	l, store := newLoader(fetcher, &prefixTranslator{}, state.LocaleEN)
	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Seed load failed: %v", err)
	}

	fetcher.err = errors.New("server down")
	if err := l.Load(context.Background(), true, nil); err == nil {
		t.Fatal("Expected load error")
	}

	if len(store.Display()) != 2 {
		t.Error("Failed load must not clobber the previous snapshot")
	}
}

func TestLoad_SupersededBeforeInstall(t *testing.T) {
	var store *state.Store
	fetcher := &stubFetcher{items: sampleItems(2)}
	fetcher.onFetch = func() {
		// A newer operation starts while the fetch is in flight.
		store.BeginUpdate()
	}
	l, s := newLoader(fetcher, &prefixTranslator{}, state.LocaleEN)
	store = s

	err := l.Load(context.Background(), false, nil)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Expected ErrSuperseded, got %v", err)
	}
	if len(store.Display()) != 0 {
		t.Error("Superseded load must not install its snapshot")
	}
}

func TestTranslate_DerivesDisplayFromOriginal(t *testing.T) {
	l, store := newLoader(&stubFetcher{items: sampleItems(2)}, &prefixTranslator{}, state.LocaleEN)
	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store.SetLocale(state.LocaleRU)
	if err := l.Translate(context.Background(), nil); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if store.Display()[1].Title != "ru:Post b" {
		t.Errorf("Display not translated: %q", store.Display()[1].Title)
	}
	if store.Original()[1].Title != "Post b" {
		t.Error("Original must stay untranslated")
	}
}

func TestTranslate_TotalFailureDisplaysOriginals(t *testing.T) {
	translator := &prefixTranslator{err: errors.New("backend down")}
	l, store := newLoader(&stubFetcher{items: sampleItems(2)}, translator, state.LocaleEN)
	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store.SetLocale(state.LocaleRU)
	if err := l.Translate(context.Background(), nil); err != nil {
		t.Fatalf("Translate should not fail on fallback: %v", err)
	}

	if store.Display()[0].Title != "Post a" {
		t.Errorf("Failed translation should display originals, got %q", store.Display()[0].Title)
	}
}

func TestTranslate_ResetSupersedesInFlight(t *testing.T) {
	var store *state.Store
	translator := &resetTranslator{}
	l, s := newLoader(&stubFetcher{items: sampleItems(2)}, translator, state.LocaleEN)
	store = s
	translator.store = store

	if err := l.Load(context.Background(), false, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store.SetLocale(state.LocaleRU)
	err := l.Translate(context.Background(), nil)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Expected ErrSuperseded, got %v", err)
	}
	if store.Display()[0].Title != "Post a" {
		t.Error("Superseded translation must not touch the display snapshot")
	}
}

// resetTranslator simulates the user switching back to the primary locale
// while a translation is running.
type resetTranslator struct {
	store *state.Store
}

func (t *resetTranslator) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	t.store.ResetDisplay()
	out := make([]feed.Item, len(items))
	for i, item := range items {
		item.Title = "stale:" + item.Title
		out[i] = item
	}
	return out, nil
}
