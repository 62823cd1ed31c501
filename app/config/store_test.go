package config

import (
	"path/filepath"
	"testing"
)

func TestStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yml"))

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.RefreshIntervalMinutes != 15 {
		t.Errorf("Expected default refresh interval 15, got %d", cfg.RefreshIntervalMinutes)
	}
	if len(cfg.Subreddits) == 0 {
		t.Error("Expected default subreddits")
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yml"))

	saved := Config{
		Subreddits:             []string{"golang"},
		RSSFeeds:               []RSSFeed{{Name: "Go Blog", URL: "https://go.dev/blog/feed.atom"}},
		HackerNewsKeywords:     []string{"compiler"},
		RefreshIntervalMinutes: 30,
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Subreddits) != 1 || loaded.Subreddits[0] != "golang" {
		t.Errorf("Subreddits did not roundtrip: %v", loaded.Subreddits)
	}
	if len(loaded.RSSFeeds) != 1 || loaded.RSSFeeds[0].URL != saved.RSSFeeds[0].URL {
		t.Errorf("RSS feeds did not roundtrip: %v", loaded.RSSFeeds)
	}
	if loaded.RefreshIntervalMinutes != 30 {
		t.Errorf("Refresh interval did not roundtrip: %d", loaded.RefreshIntervalMinutes)
	}
}

func TestValidate(t *testing.T) {
	valid := Preset()
	if err := Validate(valid); err != nil {
		t.Errorf("Preset should validate: %v", err)
	}

	invalid := []Config{
		{RefreshIntervalMinutes: -1},
		{Subreddits: []string{""}},
		{RSSFeeds: []RSSFeed{{Name: "", URL: "https://example.com/feed"}}},
		{RSSFeeds: []RSSFeed{{Name: "Example", URL: ""}}},
		{HackerNewsKeywords: []string{""}},
	}
	for i, cfg := range invalid {
		if err := Validate(cfg); err == nil {
			t.Errorf("Config %d should fail validation", i)
		}
	}
}

func TestStore_SaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	store := NewStore(path)

	if err := store.Save(Preset()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(Config{RefreshIntervalMinutes: -5}); err == nil {
		t.Fatal("Invalid config should be rejected")
	}

	// Existing configuration must survive the rejected save.
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Subreddits) != len(Preset().Subreddits) {
		t.Error("Rejected save must not clobber the stored config")
	}
}
