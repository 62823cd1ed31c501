package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"newslens/app/state"
)

func testPrefs(t *testing.T) *Prefs {
	t.Helper()
	p, err := Open(filepath.Join(t.TempDir(), "prefs.yml"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return p
}

func TestPrefs_Defaults(t *testing.T) {
	p := testPrefs(t)

	if p.Theme() != state.ThemeDark {
		t.Errorf("Expected default theme dark, got %s", p.Theme())
	}
	if p.Lang() != state.LocaleEN {
		t.Errorf("Expected default language en, got %s", p.Lang())
	}
}

func TestPrefs_Roundtrip(t *testing.T) {
	p := testPrefs(t)

	if err := p.SetTheme(state.ThemeLight); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if err := p.SetLang(state.LocaleRU); err != nil {
		t.Fatalf("SetLang failed: %v", err)
	}

	if p.Theme() != state.ThemeLight {
		t.Errorf("Expected light, got %s", p.Theme())
	}
	if p.Lang() != state.LocaleRU {
		t.Errorf("Expected ru, got %s", p.Lang())
	}

	// Setting one preference must not clobber the other.
	if err := p.SetTheme(state.ThemeDark); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if p.Lang() != state.LocaleRU {
		t.Error("SetTheme clobbered the language preference")
	}
}

func TestPrefs_InvalidValuesRejected(t *testing.T) {
	p := testPrefs(t)

	if err := p.SetTheme("neon"); err == nil {
		t.Error("Invalid theme should be rejected")
	}
	if err := p.SetLang("de"); err == nil {
		t.Error("Unsupported language should be rejected")
	}
}

func TestPrefs_CorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	if err := os.WriteFile(path, []byte("{{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if p.Theme() != state.ThemeDark || p.Lang() != state.LocaleEN {
		t.Error("Corrupt preference file should behave like an absent one")
	}
}
