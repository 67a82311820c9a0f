package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:  true,
			NoSandbox: true,
			Timeout:   5 * time.Second,
		},
		Site: SiteConfig{
			Profile: "dr",
		},
		Search: SearchConfig{
			Keyword:   DefaultKeyword,
			Headline:  DefaultHeadline,
			Delay:     10 * time.Millisecond, // Keep fake pagination fast
			MaxRounds: 10,
		},
		Output: OutputConfig{
			Path: "article-test.pdf",
		},
		Log:    LogConfig{Level: "off"},
		Viewer: defaultConfig().Viewer,
	}
}
