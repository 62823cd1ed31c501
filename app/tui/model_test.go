package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"newslens/app/feed"
	"newslens/app/prefs"
	"newslens/app/state"
)

func testModel(t *testing.T) Model {
	t.Helper()

	store := state.NewStore(state.LocaleEN, state.ThemeDark)
	gen := store.BeginUpdate()
	store.SetSnapshots(gen, feed.Snapshot{
		{ID: "a", Source: feed.SourceReddit, SourceName: "r/golang", Title: "Post one", URL: "http://a", FetchedAt: time.Now()},
		{ID: "b", Source: feed.SourceArxiv, SourceName: "arXiv", Title: "Paper", URL: "http://b", FetchedAt: time.Now()},
	})

	p, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.yml"))
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(store, p, nil, nil)
}

func pressKey(m Model, key string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(Model)
}

func TestFeedKeys_FilterSwitch(t *testing.T) {
	m := testModel(t)

	m = pressKey(m, "5")
	if m.store.Filter() != feed.SourceArxiv {
		t.Errorf("Expected arxiv filter, got %s", m.store.Filter())
	}
	if got := len(m.projection().Items); got != 1 {
		t.Errorf("Expected 1 visible item, got %d", got)
	}

	m = pressKey(m, "1")
	if m.store.Filter() != feed.SourceAll {
		t.Errorf("Expected all filter, got %s", m.store.Filter())
	}
}

func TestFeedKeys_CursorStaysInRange(t *testing.T) {
	m := testModel(t)

	m = pressKey(m, "j")
	m = pressKey(m, "j")
	m = pressKey(m, "j")
	if m.cursor != 1 {
		t.Errorf("Cursor should clamp to the last item, got %d", m.cursor)
	}

	m = pressKey(m, "k")
	m = pressKey(m, "k")
	m = pressKey(m, "k")
	if m.cursor != 0 {
		t.Errorf("Cursor should clamp to the first item, got %d", m.cursor)
	}
}

func TestFeedKeys_ThemeToggle(t *testing.T) {
	m := testModel(t)

	m = pressKey(m, "t")
	if m.store.Theme() != state.ThemeLight {
		t.Errorf("Expected light theme, got %s", m.store.Theme())
	}
	m = pressKey(m, "t")
	if m.store.Theme() != state.ThemeDark {
		t.Errorf("Expected dark theme, got %s", m.store.Theme())
	}
}

func TestFeedKeys_LocaleToggleBackResetsDisplay(t *testing.T) {
	m := testModel(t)
	m.store.SetLocale(state.LocaleRU)

	// Simulate a translated display snapshot.
	translated := m.store.Original()
	translated[0].Title = "Пост"
	m.store.SetDisplay(m.store.Generation(), translated)

	m = pressKey(m, "l")

	if m.store.Locale() != state.LocaleEN {
		t.Fatalf("Expected switch to en, got %s", m.store.Locale())
	}
	if m.store.Display()[0].Title != "Post one" {
		t.Error("Switching to the primary locale should revert the display instantly")
	}
}

func TestView_RendersWithoutEscapes(t *testing.T) {
	m := testModel(t)
	gen := m.store.BeginUpdate()
	m.store.SetSnapshots(gen, feed.Snapshot{
		{ID: "a", Source: feed.SourceReddit, SourceName: "A & B", Title: "1 < 2", URL: "http://a", FetchedAt: time.Now()},
	})

	out := m.View()
	if !strings.Contains(out, "1 < 2") || !strings.Contains(out, "A & B") {
		t.Errorf("Terminal view should show raw text, got:\n%s", out)
	}
	if strings.Contains(out, "&lt;") || strings.Contains(out, "&amp;") {
		t.Error("Terminal view should not contain markup entities")
	}
}
