package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Cache struct {
		DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedsift.db?cache=shared&mode=rwc,description=Embedding cache connection string"`
		MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		TTL             time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=720h,description=Embedding entry lifetime"`
		ConnMaxLifetime int           `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Embedding cache configuration"`

	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embedding service configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Retention struct {
		MaxAgeDays     int `yaml:"max_age_days" json:"max_age_days" jsonschema:"default=32,description=Hard retention ceiling in days"`
		VisibilityDays int `yaml:"visibility_days" json:"visibility_days" jsonschema:"default=4,description=Default visibility window in days"`
	} `yaml:"retention" json:"retention" jsonschema:"description=Article retention configuration"`

	Dedup struct {
		Enabled   bool    `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Merge near-duplicate stories before ranking"`
		Threshold float64 `yaml:"threshold" json:"threshold" jsonschema:"default=0.85,minimum=0,maximum=1,description=Cosine similarity threshold for duplicates"`
	} `yaml:"dedup" json:"dedup" jsonschema:"description=Deduplication configuration"`

	Categories map[string]Category `yaml:"categories" json:"categories" jsonschema:"description=Feed source lists by category"`
}

// EmbeddingConfig holds settings for the external embedding service
type EmbeddingConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey     string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model      string        `yaml:"model" json:"model" jsonschema:"default=text-embedding-3-small,description=Embedding model name"`
	Dimensions int           `yaml:"dimensions" json:"dimensions" jsonschema:"default=512,description=Fixed embedding vector dimension"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// FetchConfig holds feed retrieval settings
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout for regular hosts"`
	FragileTimeout time.Duration `yaml:"fragile_timeout" json:"fragile_timeout" jsonschema:"default=15s,description=Request timeout for fragile hosts"`
	MaxAttempts    int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=2,description=Total attempts per regular host"`
	RetryDelay     time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Delay between attempts"`
	ResetDelay     time.Duration `yaml:"reset_delay" json:"reset_delay" jsonschema:"default=2s,description=Delay after a connection reset"`
	MaxRedirects   int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=20,description=Redirect ceiling"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=PostmanRuntime/7.42.0,description=User agent for feed requests"`
	FragileHosts   []string      `yaml:"fragile_hosts" json:"fragile_hosts" jsonschema:"description=Host substrings that get the relaxed policy"`

	RefreshInterval time.Duration `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"default=30m,description=Background cache warm interval"`

	NoSchemeUpgrade bool `yaml:"no_scheme_upgrade" json:"no_scheme_upgrade" jsonschema:"default=false,description=Keep http feeds on http instead of rewriting to https"`
}

// Category is one named set of feed sources with its default query
type Category struct {
	Feeds        []string `yaml:"feeds" json:"feeds" jsonschema:"required,description=Feed URLs"`
	DefaultQuery string   `yaml:"default_query" json:"default_query" jsonschema:"description=Query used when none is supplied"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with the documented defaults
func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Cache.DSN == "" {
		c.Cache.DSN = "file:feedsift.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Cache.MaxOpenConns == 0 {
		c.Cache.MaxOpenConns = 10
	}
	if c.Cache.MaxIdleConns == 0 {
		c.Cache.MaxIdleConns = 5
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * 24 * time.Hour
	}
	if c.Cache.ConnMaxLifetime == 0 {
		c.Cache.ConnMaxLifetime = 3600
	}

	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions == 0 {
		c.Embedding.Dimensions = 512
	}
	if c.Embedding.Timeout == 0 {
		c.Embedding.Timeout = 30 * time.Second
	}

	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 10 * time.Second
	}
	if c.Fetch.FragileTimeout == 0 {
		c.Fetch.FragileTimeout = 15 * time.Second
	}
	if c.Fetch.MaxAttempts == 0 {
		c.Fetch.MaxAttempts = 2
	}
	if c.Fetch.RetryDelay == 0 {
		c.Fetch.RetryDelay = time.Second
	}
	if c.Fetch.ResetDelay == 0 {
		c.Fetch.ResetDelay = 2 * time.Second
	}
	if c.Fetch.MaxRedirects == 0 {
		c.Fetch.MaxRedirects = 20
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "PostmanRuntime/7.42.0"
	}
	if c.Fetch.FragileHosts == nil {
		c.Fetch.FragileHosts = []string{"nao.ac.jp", "astroarts.co.jp", "jaxa.jp", "sciam.com"}
	}
	if c.Fetch.RefreshInterval == 0 {
		c.Fetch.RefreshInterval = 30 * time.Minute
	}

	if c.Retention.MaxAgeDays == 0 {
		c.Retention.MaxAgeDays = 32
	}
	if c.Retention.VisibilityDays == 0 {
		c.Retention.VisibilityDays = 4
	}

	if c.Dedup.Threshold == 0 {
		c.Dedup.Threshold = 0.85
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Embedding.Dimensions < 1 {
		return fmt.Errorf("embedding.dimensions must be positive")
	}
	if cfg.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}

	if cfg.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be at least 1")
	}

	if cfg.Dedup.Threshold < 0 || cfg.Dedup.Threshold > 1 {
		return fmt.Errorf("dedup.threshold must be between 0 and 1")
	}

	if cfg.Retention.VisibilityDays > cfg.Retention.MaxAgeDays {
		return fmt.Errorf("retention.visibility_days cannot exceed retention.max_age_days")
	}

	if len(cfg.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for name, cat := range cfg.Categories {
		if len(cat.Feeds) == 0 {
			return fmt.Errorf("category %q has no feeds", name)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetCategory returns a category by name with an ok flag
func (c *Config) GetCategory(name string) (Category, bool) {
	cat, ok := c.Categories[name]
	return cat, ok
}

// GetCategories returns all configured categories
func (c *Config) GetCategories() map[string]Category {
	return c.Categories
}

// DefaultCategory returns the fallback category name, "astronomy" when
// configured, otherwise the lexically first one
func (c *Config) DefaultCategory() string {
	if _, ok := c.Categories["astronomy"]; ok {
		return "astronomy"
	}
	first := ""
	for name := range c.Categories {
		if first == "" || name < first {
			first = name
		}
	}
	return first
}

// DedupEnabled reports whether near-duplicate merging is on
func (c *Config) DedupEnabled() bool {
	return c.Dedup.Enabled
}

// MaxAge returns the hard retention ceiling as a duration
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Retention.MaxAgeDays) * 24 * time.Hour
}

// VisibilityWindow returns the default visibility window as a duration
func (c *Config) VisibilityWindow() time.Duration {
	return time.Duration(c.Retention.VisibilityDays) * 24 * time.Hour
}
