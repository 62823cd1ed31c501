package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"newslens/app/client"
	"newslens/app/feed"
	"newslens/app/loader"
	"newslens/app/prefs"
	"newslens/app/state"
	"newslens/app/view"
)

type screen int

const (
	screenFeed screen = iota
	screenSettings
)

// Model is the reader's TUI state. The feed itself lives in the state
// store; the model only holds presentation state on top of it.
type Model struct {
	store  *state.Store
	prefs  *prefs.Prefs
	api    *client.Client
	loader *loader.Loader

	screen      screen
	loading     bool
	translating bool
	percent     int
	loadErr     string
	cursor      int
	width       int
	height      int

	progressCh chan int
	settings   settingsState
	styles     styleSet
}

func NewModel(store *state.Store, prefsStore *prefs.Prefs, api *client.Client, ldr *loader.Loader) Model {
	return Model{
		store:  store,
		prefs:  prefsStore,
		api:    api,
		loader: ldr,
		styles: newStyles(store.Theme()),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.startLoad(false)
}

// startLoad kicks off a feed load and the progress listener that feeds
// translation percentages back into the update loop.
func (m *Model) startLoad(force bool) tea.Cmd {
	m.loading = true
	m.loadErr = ""
	m.percent = 0
	m.progressCh = make(chan int, 16)
	return tea.Batch(loadFeed(m.loader, force, m.progressCh), waitForProgress(m.progressCh))
}

func (m *Model) startTranslate() tea.Cmd {
	m.translating = true
	m.percent = 0
	m.progressCh = make(chan int, 16)
	return tea.Batch(translateFeed(m.loader, m.progressCh), waitForProgress(m.progressCh))
}

// projection derives the current render list from the display snapshot.
func (m Model) projection() view.Projection {
	return view.Project(m.store.Display(), m.store.Filter(), m.store.Locale(), timeNow())
}

// clampCursor keeps the selection inside the visible item list.
func (m *Model) clampCursor() {
	count := len(m.projection().Items)
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedURL returns the link under the cursor, or "" when nothing is
// selected.
func (m Model) selectedURL() string {
	items := m.projection().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return ""
	}
	return items[m.cursor].URL
}

var filterKeys = map[string]feed.Source{
	"1": feed.SourceAll,
	"2": feed.SourceReddit,
	"3": feed.SourceHackerNews,
	"4": feed.SourceBlog,
	"5": feed.SourceArxiv,
}
