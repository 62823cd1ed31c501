package tui

import (
	"fmt"
	"html"
	"strings"
	"time"

	"newslens/app/state"
	"newslens/app/view"
)

var timeNow = time.Now

// View implements tea.Model interface
func (m Model) View() string {
	if m.screen == screenSettings {
		return m.viewSettings()
	}
	return m.viewFeed()
}

func (m Model) viewFeed() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("NewsLens"))
	b.WriteString("  ")
	b.WriteString(m.styles.muted.Render(m.headerStatus()))
	b.WriteString("\n\n")

	switch {
	case m.loading && !m.translating:
		b.WriteString(m.styles.muted.Render(view.LoadingMessage(m.store.Locale())))
		b.WriteString("\n")
	case m.loadErr != "":
		b.WriteString(m.styles.errorS.Render(m.loadErr))
		b.WriteString("\n")
	}

	if m.translating || (m.loading && m.store.Locale().NeedsTranslation()) {
		b.WriteString(m.styles.progress.Render(fmt.Sprintf("%s %d%%", translatingLabel(m.store.Locale()), m.percent)))
		b.WriteString("\n")
	}

	projection := m.projection()
	if projection.Empty {
		if !m.loading && m.loadErr == "" {
			b.WriteString(m.styles.muted.Render(projection.EmptyMessage))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\n")
		for i, item := range projection.Items {
			b.WriteString(m.renderCard(i, item))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.helpLine()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderCard(index int, item view.RenderItem) string {
	var b strings.Builder

	marker := "  "
	titleStyle := m.styles.itemText
	if index == m.cursor {
		marker = "> "
		titleStyle = m.styles.selected
	}

	// Render labels are escaped for markup targets; terminal cells take the
	// raw text.
	b.WriteString(marker)
	b.WriteString(m.styles.badge.Render("[" + item.SourceBadge + "]"))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(html.UnescapeString(item.Title)))
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(m.styles.source.Render(html.UnescapeString(item.SourceName)))
	if item.Author != "" {
		b.WriteString(m.styles.muted.Render(" · " + html.UnescapeString(item.Author)))
	}
	b.WriteString(m.styles.muted.Render(" · " + item.TimeLabel))
	b.WriteString("\n")

	if item.Description != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.muted.Render(truncateLine(html.UnescapeString(item.Description), m.descriptionWidth())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) headerStatus() string {
	locale := m.store.Locale()
	theme := m.store.Theme()
	filter := m.store.Filter()
	return fmt.Sprintf("filter:%s  lang:%s  theme:%s", filter, locale, theme)
}

func (m Model) helpLine() string {
	if m.store.Locale() == state.LocaleRU {
		return "1-5 фильтр · j/k выбор · enter открыть · l язык · t тема · r обновить · s настройки · q выход"
	}
	return "1-5 filter · j/k select · enter open · l language · t theme · r refresh · s settings · q quit"
}

func (m Model) descriptionWidth() int {
	if m.width > 10 {
		return m.width - 4
	}
	return 76
}

func translatingLabel(locale state.Locale) string {
	if locale == state.LocaleRU {
		return "Перевод..."
	}
	return "Translating..."
}

// truncateLine shortens s to fit one terminal row.
func truncateLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
