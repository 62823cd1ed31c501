package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"newslens/app/state"
)

// Prefs persists the two user preferences that survive sessions: the theme
// and the display language. Unset or unrecognized values fall back to the
// defaults (dark, en).
type Prefs struct {
	path string
}

type prefsFile struct {
	Theme string `yaml:"theme,omitempty"`
	Lang  string `yaml:"lang,omitempty"`
}

// Open creates a preference store at path. An empty path resolves to
// newslens/prefs.yml under the user config directory.
func Open(path string) (*Prefs, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		path = filepath.Join(configDir, "newslens", "prefs.yml")
	}
	return &Prefs{path: path}, nil
}

func (p *Prefs) Theme() state.Theme {
	theme := state.Theme(p.read().Theme)
	if !theme.Valid() {
		return state.ThemeDark
	}
	return theme
}

func (p *Prefs) Lang() state.Locale {
	lang := state.Locale(p.read().Lang)
	if !lang.Valid() {
		return state.LocaleEN
	}
	return lang
}

func (p *Prefs) SetTheme(theme state.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme: %s", theme)
	}
	file := p.read()
	file.Theme = string(theme)
	return p.write(file)
}

func (p *Prefs) SetLang(lang state.Locale) error {
	if !lang.Valid() {
		return fmt.Errorf("invalid language: %s", lang)
	}
	file := p.read()
	file.Lang = string(lang)
	return p.write(file)
}

func (p *Prefs) read() prefsFile {
	var file prefsFile

	data, err := os.ReadFile(p.path)
	if err != nil {
		return file
	}
	// A corrupt file behaves like an absent one.
	_ = yaml.Unmarshal(data, &file)
	return file
}

func (p *Prefs) write(file prefsFile) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
