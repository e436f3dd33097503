package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"xinwen/internal/fetch"
)

const (
	translateAPIKeyEnv = "GOOGLE_TRANSLATE_API_KEY"
	geminiAPIKeyEnv    = "GEMINI_API_KEY"
)

// FeedInfo is the fixed metadata of the published feed.
type FeedInfo struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type Config struct {
	// Translation settings
	TranslateAPIKey      string
	GeminiAPIKey         string
	Translator           string // "google" or "gemini"
	SourceLang           string
	TargetLang           string
	MaxTranslateRequests int // per run, 0 = unlimited

	// Pipeline settings
	MaxArticles    int
	StatePath      string
	FeedPath       string
	SourcesPath    string
	RequestTimeout time.Duration

	// Output feed
	Feed FeedInfo

	// Configured upstreams, loaded from SourcesPath
	Sources []fetch.Source

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Translator:     "google",
		SourceLang:     "en",
		TargetLang:     "zh",
		MaxArticles:    77,
		StatePath:      "state/articles.json",
		FeedPath:       "gh-pages/rss.xml",
		SourcesPath:    "configs/sources.yaml",
		RequestTimeout: 30 * time.Second,
		Feed: FeedInfo{
			Title:       "荷兰新闻 | 本地新闻每日更新",
			Link:        "https://xinwen.nl/",
			Description: "最新鲜的荷兰本地新闻，每日不间断更新！",
			Language:    "zh-CN",
		},
	}

	// Load from environment
	cfg.TranslateAPIKey = os.Getenv(translateAPIKeyEnv)
	cfg.GeminiAPIKey = os.Getenv(geminiAPIKeyEnv)

	cfg.Translator = getEnvOrDefault("TRANSLATOR", cfg.Translator)
	cfg.TargetLang = getEnvOrDefault("TARGET_LANG", cfg.TargetLang)
	cfg.StatePath = getEnvOrDefault("STATE_PATH", cfg.StatePath)
	cfg.FeedPath = getEnvOrDefault("FEED_PATH", cfg.FeedPath)
	cfg.SourcesPath = getEnvOrDefault("SOURCES_CONFIG", cfg.SourcesPath)
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.MaxTranslateRequests = getEnvIntOrDefault("MAX_TRANSLATE_REQUESTS", 0)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	cfg.Feed.Title = getEnvOrDefault("FEED_TITLE", cfg.Feed.Title)
	cfg.Feed.Link = getEnvOrDefault("FEED_LINK", cfg.Feed.Link)
	cfg.Feed.Description = getEnvOrDefault("FEED_DESCRIPTION", cfg.Feed.Description)
	cfg.Feed.Language = getEnvOrDefault("FEED_LANGUAGE", cfg.Feed.Language)

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	sources, err := LoadSources(cfg.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("load sources config: %w", err)
	}
	cfg.Sources = sources

	return cfg, cfg.Validate()
}

// LoadSources reads the source list from YAML.
func LoadSources(path string) ([]fetch.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file struct {
		Sources []fetch.Source `yaml:"sources"`
	}
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	return file.Sources, nil
}

func (c *Config) Validate() error {
	switch c.Translator {
	case "google":
		if c.TranslateAPIKey == "" {
			return fmt.Errorf("%s is required", translateAPIKeyEnv)
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%s is required when TRANSLATOR=gemini", geminiAPIKeyEnv)
		}
	default:
		return fmt.Errorf("TRANSLATOR must be 'google' or 'gemini'")
	}

	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured in %s", c.SourcesPath)
	}
	for _, src := range c.Sources {
		if src.Name == "" || src.URL == "" {
			return fmt.Errorf("every source needs a name and a url")
		}
	}

	if c.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
