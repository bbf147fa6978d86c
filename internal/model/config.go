package model

import "time"

// Config is the complete copycop configuration.
// Field tags serve both viper (mapstructure) and `config show` (yaml).
type Config struct {
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Checks      ChecksConfig      `yaml:"checks" mapstructure:"checks"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
}

// RulesConfig selects the grammar rule table
type RulesConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Empty uses the embedded table
}

// CacheConfig controls sentence-result memoization
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // Empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, json
	Color   bool   `yaml:"color" mapstructure:"color"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	FailOn  string `yaml:"fail_on" mapstructure:"fail_on"` // warn, info, none
}

// ChecksConfig toggles warning kinds
type ChecksConfig struct {
	Disabled []string `yaml:"disabled" mapstructure:"disabled"`
}

// ServerConfig controls the HTTP lint service
type ServerConfig struct {
	Addr              string  `yaml:"addr" mapstructure:"addr"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	MaxBodyBytes      int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			FailOn: "warn",
		},
		Checks: ChecksConfig{
			Disabled: []string{},
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestsPerSecond: 5,
			Burst:             10,
			MaxBodyBytes:      1 << 20,
		},
	}
}

// KindEnabled reports whether a warning kind is not disabled
func (c *ChecksConfig) KindEnabled(kind WarningKind) bool {
	for _, d := range c.Disabled {
		if WarningKind(d) == kind {
			return false
		}
	}
	return true
}
