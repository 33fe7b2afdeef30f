package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"csekit/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	API      APIConfig      `yaml:"api"`
	Data     DataConfig     `yaml:"data"`
	Download DownloadConfig `yaml:"download"`
	Logging  logger.Config  `yaml:"logging"`
}

// AppConfig represents application identity configuration.
type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// APIConfig represents upstream API configuration.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	CDNBaseURL     string        `yaml:"cdn_base_url"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec float64       `yaml:"requests_per_sec"`
	Burst          int           `yaml:"burst"`
}

// DataConfig represents local data directory configuration.
type DataConfig struct {
	CompanyDir string `yaml:"company_dir"`
	ReportsDir string `yaml:"reports_dir"`
}

// DownloadConfig represents report download configuration.
type DownloadConfig struct {
	MaxRetries  int           `yaml:"max_retries"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Delay       time.Duration `yaml:"delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "csekit",
			Env:  "development",
		},
		API: APIConfig{
			BaseURL:        "https://www.cse.lk/api/",
			CDNBaseURL:     "https://cdn.cse.lk/",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:        30 * time.Second,
			RequestsPerSec: 2,
			Burst:          1,
		},
		Data: DataConfig{
			CompanyDir: "company_data",
			ReportsDir: "reports",
		},
		Download: DownloadConfig{
			MaxRetries:  3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     10 * time.Second,
			Delay:       time.Second,
		},
		Logging: logger.DefaultConfig,
	}
}

// Load loads configuration from a YAML file on top of the defaults and then
// applies environment variable overrides.
func Load(filename string) (*Config, error) {
	config := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.RequestsPerSec <= 0 {
		return fmt.Errorf("api.requests_per_sec must be positive")
	}
	return nil
}
