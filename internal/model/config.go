package model

import (
	"runtime"
	"time"
)

// Config is the full tool configuration. Values come from (highest priority
// first) CLI flags, CRICKETDATA_* environment variables, the config file,
// and the defaults below.
type Config struct {
	Seeds        SeedsConfig        `yaml:"seeds"`
	Data         DataConfig         `yaml:"data"`
	HTTP         HTTPConfig         `yaml:"http"`
	Cache        CacheConfig        `yaml:"cache"`
	LLM          LLMConfig          `yaml:"llm"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// SeedsConfig locates the curated seed files and the master registry.
type SeedsConfig struct {
	CountrySeed string `yaml:"country_seed"`
	AliasSeed   string `yaml:"alias_seed"`
	MasterSeed  string `yaml:"master_seed"`
}

// DataConfig locates the raw match data and its upstream source.
type DataConfig struct {
	RawDir       string `yaml:"raw_dir"`
	ArchiveURL   string `yaml:"archive_url"`
	DownloadsURL string `yaml:"downloads_url"`
}

// HTTPConfig controls outbound HTTP behaviour.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
}

// CacheConfig controls caching of downloaded archives.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig configures the narrative provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"-"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     int     `yaml:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// ConcurrencyConfig controls worker counts for batch narration.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles calls against the narrative provider API.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls reporting behaviour.
type OutputConfig struct {
	Verbose      bool `yaml:"verbose"`
	PreviewLimit int  `yaml:"preview_limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Seeds: SeedsConfig{
			CountrySeed: "seeds/venue_country_mapping.csv",
			AliasSeed:   "seeds/venue_alias_mapping.csv",
			MasterSeed:  "seeds/venue_master_mapping.csv",
		},
		Data: DataConfig{
			RawDir:       "data/raw/all_json",
			ArchiveURL:   "https://cricsheet.org/downloads/all_json.zip",
			DownloadsURL: "https://cricsheet.org/downloads/",
		},
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "cricket-data/0.3 (+https://github.com/bjwhitworth/cricket-data)",
			MaxBodyBytes: 500_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".cricket-data-cache",
			TTL:     1 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:    "",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1500,
			Temperature: 0.7,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Output: OutputConfig{
			Verbose:      false,
			PreviewLimit: 10,
		},
	}
}
