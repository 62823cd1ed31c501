package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"newslens/app/config"
	"newslens/app/state"
)

type settingsSection int

const (
	sectionSubreddits settingsSection = iota
	sectionRSS
	sectionKeywords
)

var sectionTitles = map[settingsSection]string{
	sectionSubreddits: "Subreddits",
	sectionRSS:        "RSS feeds",
	sectionKeywords:   "Hacker News keywords",
}

// settingsState is the channel configuration editor. It edits a local copy
// of the server config; nothing is applied until the user saves.
type settingsState struct {
	cfg    config.Config
	loaded bool
	errMsg string
	saving bool

	cursor int

	inputActive  bool
	inputSection settingsSection
	inputStage   int // RSS feeds take a name first, then a URL
	inputName    string
	inputBuffer  string
}

type settingsRow struct {
	section settingsSection
	index   int // -1 marks the section header
	label   string
}

func newSettingsState() settingsState {
	return settingsState{}
}

func (s settingsState) rows() []settingsRow {
	var rows []settingsRow

	rows = append(rows, settingsRow{sectionSubreddits, -1, sectionTitles[sectionSubreddits]})
	for i, sub := range s.cfg.Subreddits {
		rows = append(rows, settingsRow{sectionSubreddits, i, "r/" + sub})
	}

	rows = append(rows, settingsRow{sectionRSS, -1, sectionTitles[sectionRSS]})
	for i, rss := range s.cfg.RSSFeeds {
		rows = append(rows, settingsRow{sectionRSS, i, rss.Name + " (" + rss.URL + ")"})
	}

	rows = append(rows, settingsRow{sectionKeywords, -1, sectionTitles[sectionKeywords]})
	for i, keyword := range s.cfg.HackerNewsKeywords {
		rows = append(rows, settingsRow{sectionKeywords, i, keyword})
	}

	return rows
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case configLoadedMsg:
		if msg.err != nil {
			m.settings.errMsg = "Failed to load configuration: " + msg.err.Error()
			return m, nil
		}
		m.settings.cfg = msg.cfg
		m.settings.loaded = true
		m.settings.errMsg = ""
		return m, nil

	case presetLoadedMsg:
		if msg.err != nil {
			m.settings.errMsg = "Failed to load preset: " + msg.err.Error()
			return m, nil
		}
		m.settings.cfg = msg.cfg
		m.settings.loaded = true
		m.settings.errMsg = ""
		return m, nil

	case configSavedMsg:
		m.settings.saving = false
		if msg.err != nil {
			// A rejected save keeps the editor open so nothing is lost.
			m.settings.errMsg = msg.err.Error()
			return m, nil
		}
		m.screen = screenFeed
		return m, m.startLoad(true)

	case tea.KeyMsg:
		return m.handleSettingsKey(msg)
	}

	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings.inputActive {
		return m.handleSettingsInput(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q":
		m.screen = screenFeed
		return m, nil

	case "up", "k":
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
		return m, nil

	case "down", "j":
		if m.settings.cursor < len(m.settings.rows())-1 {
			m.settings.cursor++
		}
		return m, nil

	case "a":
		if !m.settings.loaded {
			return m, nil
		}
		rows := m.settings.rows()
		m.settings.inputActive = true
		m.settings.inputSection = rows[m.settings.cursor].section
		m.settings.inputStage = 0
		m.settings.inputName = ""
		m.settings.inputBuffer = ""
		return m, nil

	case "d", "x":
		m.settings.deleteUnderCursor()
		return m, nil

	case "p":
		return m, loadPreset(m.api)

	case "ctrl+s":
		if !m.settings.loaded || m.settings.saving {
			return m, nil
		}
		m.settings.saving = true
		m.settings.errMsg = ""
		return m, saveConfig(m.api, m.settings.cfg)
	}

	return m, nil
}

func (m Model) handleSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settings.inputActive = false
		return m, nil

	case tea.KeyEnter:
		m.settings.commitInput()
		return m, nil

	case tea.KeyBackspace:
		runes := []rune(m.settings.inputBuffer)
		if len(runes) > 0 {
			m.settings.inputBuffer = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.settings.inputBuffer += " "
		return m, nil

	case tea.KeyRunes:
		m.settings.inputBuffer += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

func (s *settingsState) commitInput() {
	text := strings.TrimSpace(s.inputBuffer)
	if text == "" {
		return
	}

	switch s.inputSection {
	case sectionSubreddits:
		s.cfg.Subreddits = append(s.cfg.Subreddits, strings.TrimPrefix(text, "r/"))

	case sectionRSS:
		if s.inputStage == 0 {
			s.inputName = text
			s.inputStage = 1
			s.inputBuffer = ""
			return
		}
		s.cfg.RSSFeeds = append(s.cfg.RSSFeeds, config.RSSFeed{Name: s.inputName, URL: text})

	case sectionKeywords:
		s.cfg.HackerNewsKeywords = append(s.cfg.HackerNewsKeywords, text)
	}

	s.inputActive = false
	s.inputBuffer = ""
}

func (s *settingsState) deleteUnderCursor() {
	rows := s.rows()
	if s.cursor >= len(rows) {
		return
	}
	row := rows[s.cursor]
	if row.index < 0 {
		return
	}

	switch row.section {
	case sectionSubreddits:
		s.cfg.Subreddits = append(s.cfg.Subreddits[:row.index], s.cfg.Subreddits[row.index+1:]...)
	case sectionRSS:
		s.cfg.RSSFeeds = append(s.cfg.RSSFeeds[:row.index], s.cfg.RSSFeeds[row.index+1:]...)
	case sectionKeywords:
		s.cfg.HackerNewsKeywords = append(s.cfg.HackerNewsKeywords[:row.index], s.cfg.HackerNewsKeywords[row.index+1:]...)
	}

	if s.cursor >= len(s.rows()) {
		s.cursor = len(s.rows()) - 1
	}
}

func (m Model) viewSettings() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("NewsLens · Settings"))
	b.WriteString("\n\n")

	if !m.settings.loaded && m.settings.errMsg == "" {
		b.WriteString(m.styles.muted.Render("Loading configuration..."))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range m.settings.rows() {
		marker := "  "
		if i == m.settings.cursor {
			marker = "> "
		}

		if row.index < 0 {
			b.WriteString("\n")
			b.WriteString(marker)
			b.WriteString(m.styles.badge.Render(row.label))
		} else {
			b.WriteString(marker)
			b.WriteString("  ")
			b.WriteString(m.styles.itemText.Render(row.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("Refresh every %d min · items kept for %d h",
		m.settings.cfg.RefreshIntervalMinutes, m.settings.cfg.CacheTTLHours)))
	b.WriteString("\n")

	if m.settings.inputActive {
		b.WriteString("\n")
		b.WriteString(m.styles.progress.Render(m.inputPrompt() + m.settings.inputBuffer + "_"))
		b.WriteString("\n")
	}

	if m.settings.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errorS.Render(m.settings.errMsg))
		b.WriteString("\n")
	}

	if m.settings.saving {
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.settingsHelpLine()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) inputPrompt() string {
	if m.settings.inputSection == sectionRSS {
		if m.settings.inputStage == 0 {
			return "Feed name: "
		}
		return "Feed URL: "
	}
	return "Add: "
}

func (m Model) settingsHelpLine() string {
	if m.store.Locale() == state.LocaleRU {
		return "j/k выбор · a добавить · d удалить · p пресет · ctrl+s сохранить · esc назад"
	}
	return "j/k select · a add · d delete · p preset · ctrl+s save · esc back"
}
