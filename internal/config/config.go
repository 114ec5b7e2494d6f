package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/wordscope/internal/fetcher"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wordscope"

	// DefaultListenAddress is the address the API server binds to.
	DefaultListenAddress = "127.0.0.1:8080"

	// DefaultTimeout bounds a single page download.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is sent with every page and robots.txt request.
	DefaultUserAgent = fetcher.DefaultUserAgent

	// DefaultMaxBodySize limits the response body read per page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxBatchSize is the largest URL list a batch request may carry.
	DefaultMaxBatchSize = 20

	// DefaultDisplayTokenLimit caps the body tokens returned for display.
	DefaultDisplayTokenLimit = 100

	// DefaultConcurrency processes batch URLs one at a time.
	DefaultConcurrency = 1

	// DefaultExtractMode reads the whole document body.
	DefaultExtractMode = ExtractModeFull

	// DefaultShutdownTimeout bounds graceful shutdown of the API server.
	DefaultShutdownTimeout = 30 * time.Second
)

// Text extraction modes accepted by ExtractMode.
const (
	ExtractModeFull        = "full"
	ExtractModeReadability = "readability"
)

// Config holds all configuration options for wordscope.
// It is populated from defaults, the YAML file, the environment and CLI
// flags in that order, then passed down explicitly.
type Config struct {
	// ListenAddress is the "host:port" the API server listens on.
	ListenAddress string

	// Timeout is the per-page download timeout.
	Timeout time.Duration

	// ShutdownTimeout bounds how long in-flight requests may finish on shutdown.
	ShutdownTimeout time.Duration

	// UserAgent is sent with every page and robots.txt request.
	UserAgent string

	// MaxBodySize is the maximum number of response bytes read per page.
	MaxBodySize int64

	// MaxBatchSize is the maximum number of URLs in one batch.
	MaxBatchSize int

	// DisplayTokenLimit caps the body tokens included in a page result.
	// Zero returns every token.
	DisplayTokenLimit int

	// MaxTextLength cuts each region text to this many characters before
	// tokenization. Zero disables the cap.
	MaxTextLength int

	// Concurrency is the number of batch URLs analyzed at the same time.
	Concurrency int

	// ExtractMode selects how the body text is located: "full" or "readability".
	ExtractMode string

	// RespectRobots makes the fetcher honor robots.txt.
	RespectRobots bool

	// HostRate is the maximum requests per second sent to a single host.
	// Zero disables rate limiting.
	HostRate float64

	// Proxy is the "host:port" of a SOCKS5 proxy all requests go through.
	// Empty connects directly.
	Proxy string

	// CacheTTL is how long fetched pages are reused. Zero disables the cache.
	CacheTTL time.Duration

	// CacheDir is the directory holding the page cache database.
	CacheDir string

	// DetectLanguage enables body language detection.
	DetectLanguage bool

	// JSONLogs switches the log output to JSON.
	JSONLogs bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the YAML configuration file.
	// Empty means the default search locations are used.
	ConfigFilePath string

	// Targets are the URLs analyzed by the analyze command.
	Targets []string

	// JSONReport writes the analyze result as JSON.
	JSONReport bool

	// MarkdownReport writes the analyze result as Markdown.
	MarkdownReport bool

	// ReportFile is the file the analyze report is written to.
	// Empty writes to stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddress:     DefaultListenAddress,
		Timeout:           DefaultTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		MaxBatchSize:      DefaultMaxBatchSize,
		DisplayTokenLimit: DefaultDisplayTokenLimit,
		Concurrency:       DefaultConcurrency,
		ExtractMode:       DefaultExtractMode,
		CacheDir:          XDGCacheDir(),
	}
}

// XDGConfigDir returns the XDG config directory for wordscope.
// Default: ~/.config/wordscope on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for wordscope.
// Default: ~/.cache/wordscope on Linux.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// CacheEnabled reports whether fetched pages are cached.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// Validate checks that the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.MaxBatchSize <= 0 {
		return ErrInvalidMaxBatchSize
	}
	if c.DisplayTokenLimit < 0 {
		return ErrInvalidDisplayTokenLimit
	}
	if c.MaxTextLength < 0 {
		return ErrInvalidMaxTextLength
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.ExtractMode != ExtractModeFull && c.ExtractMode != ExtractModeReadability {
		return ErrInvalidExtractMode
	}
	if c.HostRate < 0 {
		return ErrInvalidHostRate
	}
	if c.Proxy != "" && !fetcher.ValidProxyAddress(c.Proxy) {
		return ErrInvalidProxy
	}
	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// ValidateTargets checks the URL list of the analyze command.
func (c *Config) ValidateTargets() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if len(c.Targets) > c.MaxBatchSize {
		return ErrTooManyTargets
	}
	return nil
}
