package config

// RSSFeed is a single configured RSS/Atom source.
type RSSFeed struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Config describes which channels the aggregator pulls from. It is stored
// as YAML on disk and exchanged as JSON over the API.
type Config struct {
	Subreddits             []string  `yaml:"subreddits" json:"subreddits"`
	RSSFeeds               []RSSFeed `yaml:"rss_feeds" json:"rss_feeds"`
	HackerNewsKeywords     []string  `yaml:"hackernews_keywords" json:"hackernews_keywords"`
	CacheTTLHours          int       `yaml:"cache_ttl_hours,omitempty" json:"cache_ttl_hours,omitempty"`
	RefreshIntervalMinutes int       `yaml:"refresh_interval_minutes" json:"refresh_interval_minutes"`
}
