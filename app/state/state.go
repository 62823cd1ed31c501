package state

import (
	"sync"

	"newslens/app/feed"
)

// Locale is the active display language. The primary locale renders items
// as fetched; the secondary one requires translating the feed.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
)

func (l Locale) Valid() bool {
	return l == LocaleEN || l == LocaleRU
}

// NeedsTranslation reports whether feeds shown under this locale must be
// translated first.
func (l Locale) NeedsTranslation() bool {
	return l == LocaleRU
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Generation is a token attached to every load/translate operation. Results
// carrying a stale generation are discarded instead of applied.
type Generation uint64

// Store owns the application state: the immutable original snapshot, the
// display snapshot derived from it, the active source filter, locale and
// theme. All mutation goes through Store methods; snapshot writes are
// guarded by a generation check so a superseded operation can never clobber
// the state a newer one established.
type Store struct {
	mu         sync.RWMutex
	original   feed.Snapshot
	display    feed.Snapshot
	filter     feed.Source
	locale     Locale
	theme      Theme
	generation Generation
}

func NewStore(locale Locale, theme Theme) *Store {
	if !locale.Valid() {
		locale = LocaleEN
	}
	if !theme.Valid() {
		theme = ThemeDark
	}
	return &Store{
		original: feed.Snapshot{},
		display:  feed.Snapshot{},
		filter:   feed.SourceAll,
		locale:   locale,
		theme:    theme,
	}
}

// BeginUpdate bumps the generation and returns the new value. Every load or
// translate operation must call this before doing work and pass the returned
// token to SetSnapshots/SetDisplay; bumping invalidates all earlier tokens.
func (s *Store) BeginUpdate() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Store) Generation() Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SetSnapshots replaces both original and display wholesale. Returns false
// and leaves the state untouched when gen is no longer current.
func (s *Store) SetSnapshots(gen Generation, snapshot feed.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.original = feed.CloneSnapshot(snapshot)
	s.display = feed.CloneSnapshot(snapshot)
	return true
}

// SetDisplay replaces the display snapshot. The write is rejected when gen
// is stale or when the snapshot would violate the length invariant against
// the current original.
func (s *Store) SetDisplay(gen Generation, snapshot feed.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	if len(snapshot) != len(s.original) {
		return false
	}
	s.display = feed.CloneSnapshot(snapshot)
	return true
}

// ResetDisplay reverts the display snapshot to the original and bumps the
// generation, superseding any in-flight translation.
func (s *Store) ResetDisplay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.display = feed.CloneSnapshot(s.original)
}

func (s *Store) Original() feed.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feed.CloneSnapshot(s.original)
}

func (s *Store) Display() feed.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feed.CloneSnapshot(s.display)
}

func (s *Store) SetFilter(f feed.Source) {
	if !f.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *Store) Filter() feed.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Store) SetLocale(l Locale) {
	if !l.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = l
}

func (s *Store) Locale() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

func (s *Store) SetTheme(t Theme) {
	if !t.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}
