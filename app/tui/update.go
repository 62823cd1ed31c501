package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"newslens/app/loader"
	"newslens/app/state"
	"newslens/app/view"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case progressMsg:
		m.percent = msg.percent
		return m, waitForProgress(m.progressCh)

	case progressDoneMsg:
		return m, nil

	case loadDoneMsg:
		return m.handleLoadDone(msg.err)

	case translateDoneMsg:
		return m.handleTranslateDone(msg.err)

	case urlOpenedMsg:
		return m, nil
	}

	if m.screen == screenSettings {
		return m.updateSettings(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleFeedKey(key)
	}
	return m, nil
}

func (m Model) handleLoadDone(err error) (tea.Model, tea.Cmd) {
	m.loading = false
	m.translating = false
	if err != nil && !errors.Is(err, loader.ErrSuperseded) {
		m.loadErr = view.ErrorMessage(m.store.Locale())
	}
	m.clampCursor()
	return m, nil
}

func (m Model) handleTranslateDone(err error) (tea.Model, tea.Cmd) {
	m.translating = false
	if err != nil && !errors.Is(err, loader.ErrSuperseded) {
		m.loadErr = view.ErrorMessage(m.store.Locale())
	}
	return m, nil
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if source, ok := filterKeys[key]; ok {
		m.store.SetFilter(source)
		m.cursor = 0
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.cursor--
		m.clampCursor()
		return m, nil

	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, nil

	case "enter", "o":
		if url := m.selectedURL(); url != "" {
			return m, openURL(url)
		}
		return m, nil

	case "r":
		return m, m.startLoad(true)

	case "l":
		return m.toggleLocale()

	case "t":
		return m.toggleTheme()

	case "s":
		m.screen = screenSettings
		m.settings = newSettingsState()
		return m, loadConfig(m.api)
	}

	return m, nil
}

// toggleLocale switches the display language. Switching to the secondary
// locale translates in the background; switching back is an instant revert
// that also supersedes any translation still in flight.
func (m Model) toggleLocale() (tea.Model, tea.Cmd) {
	next := state.LocaleRU
	if m.store.Locale() == state.LocaleRU {
		next = state.LocaleEN
	}

	m.store.SetLocale(next)
	// Preference persistence is best effort.
	_ = m.prefs.SetLang(next)

	if next.NeedsTranslation() {
		return m, m.startTranslate()
	}

	m.store.ResetDisplay()
	m.translating = false
	return m, nil
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := state.ThemeLight
	if m.store.Theme() == state.ThemeLight {
		next = state.ThemeDark
	}

	m.store.SetTheme(next)
	m.styles = newStyles(next)
	_ = m.prefs.SetTheme(next)
	return m, nil
}
