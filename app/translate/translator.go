package translate

import (
	"context"

	"newslens/app/feed"
)

// Translator translates one batch of items into the target language. The
// returned slice must have the same length and order as the input; a reply
// violating that contract is treated as a failed batch by the caller.
type Translator interface {
	TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error)
}

// Noop returns items unchanged. Used when translation is disabled and as a
// stand-in for tests.
type Noop struct{}

func (Noop) TranslateBatch(ctx context.Context, items []feed.Item, targetLang string) ([]feed.Item, error) {
	out := make([]feed.Item, len(items))
	copy(out, items)
	return out, nil
}
