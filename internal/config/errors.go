package config

import "errors"

// Configuration validation errors returned by Config.Validate and
// Config.ValidateTargets.
var (
	// ErrNoTarget is returned when the analyze command gets no URL.
	ErrNoTarget = errors.New("no target specified: provide one or more URLs")

	// ErrTooManyTargets is returned when more URLs are given than MaxBatchSize allows.
	ErrTooManyTargets = errors.New("too many targets: exceeds the maximum batch size")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive.
	ErrInvalidShutdownTimeout = errors.New("invalid shutdown timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidMaxBatchSize is returned when the max batch size is not positive.
	ErrInvalidMaxBatchSize = errors.New("invalid max batch size: must be positive")

	// ErrInvalidDisplayTokenLimit is returned when the display token limit is negative.
	ErrInvalidDisplayTokenLimit = errors.New("invalid display token limit: must be zero or positive")

	// ErrInvalidMaxTextLength is returned when the max text length is negative.
	ErrInvalidMaxTextLength = errors.New("invalid max text length: must be zero or positive")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidExtractMode is returned for an unknown extraction mode.
	ErrInvalidExtractMode = errors.New(`invalid extract mode: must be "full" or "readability"`)

	// ErrInvalidHostRate is returned when the per-host rate is negative.
	ErrInvalidHostRate = errors.New("invalid host rate: must be zero or positive")

	// ErrInvalidProxy is returned when the SOCKS5 proxy is not a "host:port" pair.
	ErrInvalidProxy = errors.New("invalid proxy: must be host:port")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be zero or positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidEnv is returned when a WORDSCOPE_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
