package translate

import (
	"context"
	"log/slog"
	"math"

	"github.com/samber/lo"

	"newslens/app/feed"
)

const DefaultBatchSize = 10

// ProgressFunc receives the completed percentage after every batch:
// (40), (80), (100), ...
type ProgressFunc func(percent int)

// BatchResult summarizes a finished translation run.
type BatchResult struct {
	Total         int   // items in the source snapshot
	Translated    int   // items actually translated
	FailedBatches []int // zero-based indexes of batches that fell back to originals
}

// Failed reports whether nothing was translated at all.
func (r BatchResult) Failed() bool {
	return r.Total > 0 && r.Translated == 0
}

// Batcher translates a snapshot in fixed-size sequential batches. Batches
// are never sent concurrently: sequential dispatch bounds backend load and
// keeps progress reporting monotonic.
type Batcher struct {
	translator Translator
	batchSize  int
}

func NewBatcher(translator Translator) *Batcher {
	return &Batcher{
		translator: translator,
		batchSize:  DefaultBatchSize,
	}
}

// NewBatcherSize creates a Batcher with a custom batch size. Sizes below 1
// fall back to DefaultBatchSize.
func NewBatcherSize(translator Translator, batchSize int) *Batcher {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Batcher{translator: translator, batchSize: batchSize}
}

// Run translates source into targetLang. The result always has the same
// length and order as source: a batch that fails (error, cancellation, or a
// reply of the wrong length) contributes its original items unchanged and
// is recorded in the result, the remaining batches are still attempted.
// onProgress, when non-nil, is called after every batch with the completed
// percentage; the final call is always 100 for a non-empty source.
func (b *Batcher) Run(ctx context.Context, source feed.Snapshot, targetLang string, onProgress ProgressFunc) (feed.Snapshot, BatchResult) {
	result := BatchResult{Total: len(source)}
	if len(source) == 0 {
		return feed.Snapshot{}, result
	}

	batches := lo.Chunk(source, b.batchSize)
	out := make(feed.Snapshot, 0, len(source))
	processed := 0

	for i, batch := range batches {
		translated, err := b.translateBatch(ctx, batch, targetLang)
		if err != nil {
			slog.Warn("Translation batch failed, keeping original text",
				"batch", i, "size", len(batch), "error", err)
			out = append(out, batch...)
			result.FailedBatches = append(result.FailedBatches, i)
		} else {
			out = append(out, translated...)
			result.Translated += len(batch)
		}

		processed += len(batch)
		if onProgress != nil {
			onProgress(progressPercent(processed, len(source)))
		}
	}

	return out, result
}

func (b *Batcher) translateBatch(ctx context.Context, batch []feed.Item, targetLang string) ([]feed.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply, err := b.translator.TranslateBatch(ctx, batch, targetLang)
	if err != nil {
		return nil, err
	}
	if len(reply) != len(batch) {
		return nil, &ContractViolationError{Sent: len(batch), Received: len(reply)}
	}

	// Only the text fields are taken from the reply; identity and linkage
	// fields always come from the source item.
	out := make([]feed.Item, len(batch))
	for j := range batch {
		item := batch[j]
		item.Title = reply[j].Title
		item.Description = reply[j].Description
		item.Author = reply[j].Author
		out[j] = item
	}
	return out, nil
}

func progressPercent(processed, total int) int {
	percent := int(math.Round(float64(processed) / float64(total) * 100))
	return min(100, percent)
}
