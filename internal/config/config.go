package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Browser BrowserConfig `yaml:"browser"`
	Server  ServerConfig  `yaml:"server"`
}

// ScraperConfig holds the settings shared by the fetch strategies and the
// scrape orchestrator
type ScraperConfig struct {
	// BaseURL is the only URL prefix the scraper accepts match pages from.
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// BrowserConfig holds the headless browser configuration for JavaScript
// rendering
type BrowserConfig struct {
	Headless  bool   `yaml:"headless"`
	UserAgent string `yaml:"user_agent"`
	// PageLoadTimeout bounds the wait for the document root after navigation.
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	// SettleDelay is the fixed wait after load so client-side rendering can
	// finish before the markup is captured.
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Scraper: ScraperConfig{
			BaseURL:    "https://tracker.gg/valorant",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelay: 1 * time.Second,
		},
		Browser: BrowserConfig{
			Headless:        true,
			UserAgent:       DefaultUserAgent,
			PageLoadTimeout: 10 * time.Second,
			SettleDelay:     3 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
	}
}

// Load reads a YAML file over the defaults, so a partial file only overrides
// the keys it names.
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}
