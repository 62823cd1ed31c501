package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store reads and writes the channel configuration file. Reads fall back to
// Default() when the file does not exist yet; writes go through a temp file
// rename so a failed save never truncates the existing configuration.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Default is the configuration used until the user saves their own.
func Default() Config {
	return Config{
		Subreddits:             []string{"MachineLearning", "artificial"},
		RSSFeeds:               []RSSFeed{},
		HackerNewsKeywords:     []string{"AI", "GPT"},
		CacheTTLHours:          72,
		RefreshIntervalMinutes: 15,
	}
}

func (s *Store) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	setDefaults(&cfg)
	return cfg, nil
}

func (s *Store) Save(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	return nil
}

func setDefaults(cfg *Config) {
	if cfg.RefreshIntervalMinutes == 0 {
		cfg.RefreshIntervalMinutes = 15
	}
	if cfg.CacheTTLHours == 0 {
		cfg.CacheTTLHours = 72
	}
	if cfg.Subreddits == nil {
		cfg.Subreddits = []string{}
	}
	if cfg.RSSFeeds == nil {
		cfg.RSSFeeds = []RSSFeed{}
	}
	if cfg.HackerNewsKeywords == nil {
		cfg.HackerNewsKeywords = []string{}
	}
}

// Validate checks a configuration before it is persisted.
func Validate(cfg Config) error {
	if cfg.RefreshIntervalMinutes < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}
	if cfg.CacheTTLHours < 0 {
		return fmt.Errorf("cache TTL must be non-negative")
	}

	for i, sub := range cfg.Subreddits {
		if sub == "" {
			return fmt.Errorf("subreddit at index %d is empty", i)
		}
	}
	for i, rss := range cfg.RSSFeeds {
		if rss.Name == "" {
			return fmt.Errorf("RSS feed at index %d has no name", i)
		}
		if rss.URL == "" {
			return fmt.Errorf("RSS feed at index %d has no URL", i)
		}
	}
	for i, keyword := range cfg.HackerNewsKeywords {
		if keyword == "" {
			return fmt.Errorf("keyword at index %d is empty", i)
		}
	}

	return nil
}
