package config

// Preset returns the curated channel preset offered as a starting point in
// the settings form.
func Preset() Config {
	return Config{
		Subreddits: []string{
			"MachineLearning",
			"artificial",
			"ArtificialIntelligence",
			"LocalLLaMA",
			"singularity",
		},
		RSSFeeds: []RSSFeed{
			{Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/"},
			{Name: "HuggingFace Blog", URL: "https://huggingface.co/blog/feed.xml"},
			{Name: "AWS ML Blog", URL: "https://aws.amazon.com/blogs/machine-learning/feed/"},
		},
		HackerNewsKeywords: []string{
			"AI", "GPT", "LLM", "machine learning", "deep learning",
		},
		CacheTTLHours:          36,
		RefreshIntervalMinutes: 15,
	}
}
