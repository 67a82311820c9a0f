package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Historic defaults for the one article this tool was first written to fetch.
const (
	DefaultKeyword  = "sommer"
	DefaultHeadline = "Over 25 graders varme: Vi har årets første sommerdag"
)

type Config struct {
	Browser BrowserConfig `mapstructure:"browser"`
	Site    SiteConfig    `mapstructure:"site"`
	Search  SearchConfig  `mapstructure:"search"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
}

type BrowserConfig struct {
	Headless  bool          `mapstructure:"headless"`
	Bin       string        `mapstructure:"bin"`
	NoSandbox bool          `mapstructure:"no_sandbox"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SiteConfig struct {
	Profile string `mapstructure:"profile"`
}

type SearchConfig struct {
	Keyword  string `mapstructure:"keyword"`
	Headline string `mapstructure:"headline"`
	// Delay is the fixed settle pause after consent load and after "load more".
	Delay     time.Duration `mapstructure:"delay"`
	MaxRounds int           `mapstructure:"max_rounds"`
}

type OutputConfig struct {
	Path string `mapstructure:"path"`
	Open bool   `mapstructure:"open"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ViewerConfig struct {
	Darwin  []string `mapstructure:"darwin"`
	Linux   []string `mapstructure:"linux"`
	Windows []string `mapstructure:"windows"`
}

// ForOS returns the viewer candidates for the running platform.
func (v ViewerConfig) ForOS() []string {
	switch runtime.GOOS {
	case "darwin":
		return v.Darwin
	case "windows":
		return v.Windows
	default:
		return v.Linux
	}
}

func defaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  30 * time.Second,
		},
		Site: SiteConfig{
			Profile: "dr",
		},
		Search: SearchConfig{
			Keyword:   DefaultKeyword,
			Headline:  DefaultHeadline,
			Delay:     1500 * time.Millisecond,
			MaxRounds: 100,
		},
		Output: OutputConfig{
			Path: "article.pdf",
		},
		Log: LogConfig{
			Level: "off",
		},
		Viewer: ViewerConfig{
			Darwin:  []string{"preview", "open"},
			Linux:   []string{"zathura", "evince", "xdg-open"},
			Windows: []string{"start"},
		},
	}
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Dir is the per-user configuration directory.
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "drclip")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DRCLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// setDefaults registers every leaf key so a config file that sets only part
// of a section still inherits the remaining defaults.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.bin", cfg.Browser.Bin)
	v.SetDefault("browser.no_sandbox", cfg.Browser.NoSandbox)
	v.SetDefault("browser.timeout", cfg.Browser.Timeout)
	v.SetDefault("site.profile", cfg.Site.Profile)
	v.SetDefault("search.keyword", cfg.Search.Keyword)
	v.SetDefault("search.headline", cfg.Search.Headline)
	v.SetDefault("search.delay", cfg.Search.Delay)
	v.SetDefault("search.max_rounds", cfg.Search.MaxRounds)
	v.SetDefault("output.path", cfg.Output.Path)
	v.SetDefault("output.open", cfg.Output.Open)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("viewer.darwin", cfg.Viewer.Darwin)
	v.SetDefault("viewer.linux", cfg.Viewer.Linux)
	v.SetDefault("viewer.windows", cfg.Viewer.Windows)
}

// expandPath expands a leading ~/ to the home directory.
// Relative output paths stay relative to the working directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	return path
}

func expandPaths(cfg *Config) {
	cfg.Output.Path = expandPath(cfg.Output.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Browser.Bin = expandPath(cfg.Browser.Bin)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings so the TOML stays readable
	browserCfg := map[string]interface{}{
		"headless":   config.Browser.Headless,
		"bin":        config.Browser.Bin,
		"no_sandbox": config.Browser.NoSandbox,
		"timeout":    config.Browser.Timeout.String(),
	}

	searchCfg := map[string]interface{}{
		"keyword":    config.Search.Keyword,
		"headline":   config.Search.Headline,
		"delay":      config.Search.Delay.String(),
		"max_rounds": config.Search.MaxRounds,
	}

	v.Set("browser", browserCfg)
	v.Set("site", map[string]interface{}{"profile": config.Site.Profile})
	v.Set("search", searchCfg)
	v.Set("output", map[string]interface{}{"path": config.Output.Path, "open": config.Output.Open})
	v.Set("log", map[string]interface{}{"level": config.Log.Level, "file": config.Log.File})
	v.Set("viewer", map[string]interface{}{
		"darwin":  config.Viewer.Darwin,
		"linux":   config.Viewer.Linux,
		"windows": config.Viewer.Windows,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
