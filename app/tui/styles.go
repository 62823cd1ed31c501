package tui

import (
	"github.com/charmbracelet/lipgloss"

	"newslens/app/state"
)

// palette holds the theme-dependent colors.
type palette struct {
	primary   string
	text      string
	muted     string
	highlight string
	errorC    string
	border    string
}

var palettes = map[state.Theme]palette{
	state.ThemeDark: {
		primary:   "#7D56F4",
		text:      "#FAFAFA",
		muted:     "#626262",
		highlight: "#04B575",
		errorC:    "#FF5F5F",
		border:    "#874BFD",
	},
	state.ThemeLight: {
		primary:   "#5A32C8",
		text:      "#1A1A1A",
		muted:     "#8A8A8A",
		highlight: "#02734A",
		errorC:    "#C62828",
		border:    "#5A32C8",
	},
}

type styleSet struct {
	title    lipgloss.Style
	badge    lipgloss.Style
	source   lipgloss.Style
	itemText lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	errorS   lipgloss.Style
	progress lipgloss.Style
	help     lipgloss.Style
	box      lipgloss.Style
}

func newStyles(theme state.Theme) styleSet {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[state.ThemeDark]
	}

	return styleSet{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.text)).
			Background(lipgloss.Color(p.primary)).
			Padding(0, 1),

		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),

		source: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.highlight)),

		itemText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)),

		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),

		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),

		errorS: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorC)),

		progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.highlight)),

		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),

		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(1, 2),
	}
}
