package model

import "time"

// Config holds the complete foliowatch configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Database    DatabaseConfig    `yaml:"database"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls snapshot fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots"`
	MaxRetries    int           `yaml:"max_retries"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
}

// CacheConfig controls fetched-content caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	CompanyWorkers    int     `yaml:"company_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// SearchConfig configures the news search provider
type SearchConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	MaxRetries int    `yaml:"max_retries"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// LLMConfig configures the optional advisory LLM capability
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DatabaseConfig locates the SQLite database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       60 * time.Second,
			UserAgent:     "Foliowatch/0.1 (+https://github.com/mzaikin/foliowatch)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			MaxRetries:    2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			CompanyWorkers:    4,
			RequestsPerSecond: 1.0,
			Burst:             3,
		},
		Search: SearchConfig{
			BaseURL:    "https://kagi.com/api/v0/search",
			MaxRetries: 2,
			TimeoutSec: 30,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 500,
		},
		Database: DatabaseConfig{
			Path: "data/foliowatch.db",
		},
	}
}
