package config

import "time"

// File is the layout of the YAML configuration file.
// Unset keys leave the corresponding Config value untouched.
type File struct {
	Server   ServerSection   `yaml:"server"`
	Fetch    FetchSection    `yaml:"fetch"`
	Analysis AnalysisSection `yaml:"analysis"`
	Cache    CacheSection    `yaml:"cache"`
	Log      LogSection      `yaml:"log"`
}

// ServerSection configures the API server.
type ServerSection struct {
	Listen          *string        `yaml:"listen"`
	ShutdownTimeout *time.Duration `yaml:"shutdownTimeout"`
}

// FetchSection configures page downloads.
type FetchSection struct {
	Timeout       *time.Duration `yaml:"timeout"`
	UserAgent     *string        `yaml:"userAgent"`
	MaxBodySize   *int64         `yaml:"maxBodySize"`
	ExtractMode   *string        `yaml:"extractMode"`
	RespectRobots *bool          `yaml:"respectRobots"`
	HostRate      *float64       `yaml:"hostRate"`
	Proxy         *string        `yaml:"proxy"`
}

// AnalysisSection configures tokenization and batching.
type AnalysisSection struct {
	MaxBatchSize      *int  `yaml:"maxBatchSize"`
	DisplayTokenLimit *int  `yaml:"displayTokenLimit"`
	MaxTextLength     *int  `yaml:"maxTextLength"`
	Concurrency       *int  `yaml:"concurrency"`
	DetectLanguage    *bool `yaml:"detectLanguage"`
}

// CacheSection configures the page cache.
type CacheSection struct {
	TTL *time.Duration `yaml:"ttl"`
	Dir *string        `yaml:"dir"`
}

// LogSection configures logging.
type LogSection struct {
	JSON    *bool `yaml:"json"`
	Verbose *bool `yaml:"verbose"`
}

// Apply copies every key set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	set(&cfg.ListenAddress, f.Server.Listen)
	set(&cfg.ShutdownTimeout, f.Server.ShutdownTimeout)

	set(&cfg.Timeout, f.Fetch.Timeout)
	set(&cfg.UserAgent, f.Fetch.UserAgent)
	set(&cfg.MaxBodySize, f.Fetch.MaxBodySize)
	set(&cfg.ExtractMode, f.Fetch.ExtractMode)
	set(&cfg.RespectRobots, f.Fetch.RespectRobots)
	set(&cfg.HostRate, f.Fetch.HostRate)
	set(&cfg.Proxy, f.Fetch.Proxy)

	set(&cfg.MaxBatchSize, f.Analysis.MaxBatchSize)
	set(&cfg.DisplayTokenLimit, f.Analysis.DisplayTokenLimit)
	set(&cfg.MaxTextLength, f.Analysis.MaxTextLength)
	set(&cfg.Concurrency, f.Analysis.Concurrency)
	set(&cfg.DetectLanguage, f.Analysis.DetectLanguage)

	set(&cfg.CacheTTL, f.Cache.TTL)
	set(&cfg.CacheDir, f.Cache.Dir)

	set(&cfg.JSONLogs, f.Log.JSON)
	set(&cfg.Verbose, f.Log.Verbose)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
