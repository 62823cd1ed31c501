package translate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"newslens/app/feed"
)

// scriptedTranslator translates by prefixing titles, failing the batches
// whose index is listed in failBatches.
type scriptedTranslator struct {
	calls       int
	failBatches map[int]bool
	badLength   map[int]bool
}

func (s *scriptedTranslator) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	batch := s.calls
	s.calls++

	if s.failBatches[batch] {
		return nil, fmt.Errorf("backend unavailable")
	}
	if s.badLength[batch] {
		return items[:len(items)-1], nil
	}

	out := make([]feed.Item, len(items))
	for i, item := range items {
		translated := item
		translated.Title = "[" + targetLang + "] " + item.Title
		if item.Description != "" {
			translated.Description = "[" + targetLang + "] " + item.Description
		}
		out[i] = translated
	}
	return out, nil
}

func makeSnapshot(n int) feed.Snapshot {
	s := make(feed.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		s = append(s, feed.Item{
			Title:     fmt.Sprintf("title %d", i),
			URL:       fmt.Sprintf("http://example.com/%d", i),
			FetchedAt: time.Now(),
		})
	}
	return s
}

func TestBatcher_AllBatchesSucceed(t *testing.T) {
	source := makeSnapshot(25)
	batcher := NewBatcher(&scriptedTranslator{})

	var progress []int
	result, stats := batcher.Run(context.Background(), source, "ru", func(p int) {
		progress = append(progress, p)
	})

	if !feed.SameOrder(source, result) {
		t.Fatal("Result must keep the length and order of the source snapshot")
	}
	for i, item := range result {
		if item.Title != "[ru] "+source[i].Title {
			t.Errorf("Item %d not translated: %q", i, item.Title)
		}
	}

	expected := []int{40, 80, 100}
	if len(progress) != len(expected) {
		t.Fatalf("Expected %d progress emissions, got %v", len(expected), progress)
	}
	for i := range expected {
		if progress[i] != expected[i] {
			t.Errorf("Progress emission %d: expected %d, got %d", i, expected[i], progress[i])
		}
	}

	if stats.Translated != 25 || len(stats.FailedBatches) != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestBatcher_PartialFailureFallsBackPerBatch(t *testing.T) {
	source := makeSnapshot(25)
	batcher := NewBatcher(&scriptedTranslator{failBatches: map[int]bool{1: true}})

	result, stats := batcher.Run(context.Background(), source, "ru", nil)

	if !feed.SameOrder(source, result) {
		t.Fatal("Result must keep the length and order of the source snapshot")
	}

	for i, item := range result {
		original := i >= 10 && i < 20 // the failed middle batch
		if original && item.Title != source[i].Title {
			t.Errorf("Item %d from the failed batch should keep original text, got %q", i, item.Title)
		}
		if !original && item.Title == source[i].Title {
			t.Errorf("Item %d outside the failed batch should be translated", i)
		}
	}

	if stats.Translated != 15 {
		t.Errorf("Expected 15 translated items, got %d", stats.Translated)
	}
	if len(stats.FailedBatches) != 1 || stats.FailedBatches[0] != 1 {
		t.Errorf("Expected failed batch [1], got %v", stats.FailedBatches)
	}
}

func TestBatcher_BackendUnreachable(t *testing.T) {
	source := makeSnapshot(5)
	batcher := NewBatcher(&scriptedTranslator{failBatches: map[int]bool{0: true}})

	var progress []int
	result, stats := batcher.Run(context.Background(), source, "ru", func(p int) {
		progress = append(progress, p)
	})

	for i := range source {
		if result[i] != source[i] {
			t.Errorf("Item %d should equal the original exactly", i)
		}
	}

	if !stats.Failed() {
		t.Error("Result stats should report a full failure")
	}
	if len(progress) != 1 || progress[0] != 100 {
		t.Errorf("Expected a single 100%% emission, got %v", progress)
	}
}

func TestBatcher_ContractViolationTreatedAsBatchFailure(t *testing.T) {
	source := makeSnapshot(12)
	batcher := NewBatcher(&scriptedTranslator{badLength: map[int]bool{0: true}})

	result, stats := batcher.Run(context.Background(), source, "ru", nil)

	if !feed.SameOrder(source, result) {
		t.Fatal("A short reply must not corrupt snapshot alignment")
	}
	for i := 0; i < 10; i++ {
		if result[i].Title != source[i].Title {
			t.Errorf("Item %d of the violating batch should keep original text", i)
		}
	}
	for i := 10; i < 12; i++ {
		if result[i].Title == source[i].Title {
			t.Errorf("Item %d of the healthy batch should be translated", i)
		}
	}
	if len(stats.FailedBatches) != 1 || stats.FailedBatches[0] != 0 {
		t.Errorf("Expected failed batch [0], got %v", stats.FailedBatches)
	}
}

func TestBatcher_ProgressMonotonicAndFinal100(t *testing.T) {
	for _, size := range []int{1, 3, 10, 11, 25, 99} {
		source := makeSnapshot(size)
		batcher := NewBatcher(&scriptedTranslator{failBatches: map[int]bool{2: true}})

		var progress []int
		batcher.Run(context.Background(), source, "ru", func(p int) {
			progress = append(progress, p)
		})

		for i := 1; i < len(progress); i++ {
			if progress[i] < progress[i-1] {
				t.Errorf("Size %d: progress not monotonic: %v", size, progress)
			}
		}
		if progress[len(progress)-1] != 100 {
			t.Errorf("Size %d: final progress should be 100, got %v", size, progress)
		}
	}
}

func TestBatcher_EmptySnapshot(t *testing.T) {
	batcher := NewBatcher(&scriptedTranslator{})

	called := false
	result, stats := batcher.Run(context.Background(), feed.Snapshot{}, "ru", func(int) {
		called = true
	})

	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d items", len(result))
	}
	if called {
		t.Error("No progress should be emitted for an empty snapshot")
	}
	if stats.Failed() {
		t.Error("Empty snapshot is not a failure")
	}
}

func TestBatcher_IdentityFieldsCarriedFromSource(t *testing.T) {
	published := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := feed.Snapshot{{
		ID:          "hn_1",
		Source:      feed.SourceHackerNews,
		SourceName:  "Hacker News",
		Title:       "title",
		URL:         "http://example.com/1",
		PublishedAt: &published,
		FetchedAt:   time.Now(),
	}}

	// Translator that mangles linkage fields in its reply.
	mangler := translatorFunc(func(ctx context.Context, items []feed.Item, lang string) ([]feed.Item, error) {
		out := make([]feed.Item, len(items))
		for i, item := range items {
			item.Title = "перевод"
			item.URL = "http://evil.example.com"
			item.ID = "mangled"
			item.Source = feed.SourceBlog
			out[i] = item
		}
		return out, nil
	})

	result, _ := NewBatcher(mangler).Run(context.Background(), source, "ru", nil)

	got := result[0]
	if got.Title != "перевод" {
		t.Errorf("Title should come from the reply, got %q", got.Title)
	}
	if got.URL != source[0].URL || got.ID != source[0].ID || got.Source != source[0].Source {
		t.Errorf("Identity fields must be carried from the source item, got %+v", got)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(published) {
		t.Error("Timestamps must be carried from the source item")
	}
}

type translatorFunc func(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error)

func (f translatorFunc) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	return f(ctx, items, targetLang)
}

func TestBatcher_CancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := makeSnapshot(25)
	result, stats := NewBatcher(&scriptedTranslator{}).Run(ctx, source, "ru", nil)

	if !feed.SameOrder(source, result) {
		t.Fatal("Cancellation must not break the length/order invariant")
	}
	if !stats.Failed() {
		t.Error("Run under a cancelled context should report full failure")
	}
}
