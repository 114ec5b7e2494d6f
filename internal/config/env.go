package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "WORDSCOPE_"

// LookupFunc looks up an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// Missing files are ignored. With no paths, ".env" in the current
// directory is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with the WORDSCOPE_* variables found by lookup.
// A nil lookup uses os.LookupEnv.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	e := envReader{lookup: lookup}

	e.str("LISTEN", &cfg.ListenAddress)
	e.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	e.duration("TIMEOUT", &cfg.Timeout)
	e.str("USER_AGENT", &cfg.UserAgent)
	e.int64("MAX_BODY_SIZE", &cfg.MaxBodySize)
	e.str("EXTRACT_MODE", &cfg.ExtractMode)
	e.boolean("RESPECT_ROBOTS", &cfg.RespectRobots)
	e.float("HOST_RATE", &cfg.HostRate)
	e.str("PROXY", &cfg.Proxy)
	e.int("MAX_BATCH_SIZE", &cfg.MaxBatchSize)
	e.int("DISPLAY_TOKEN_LIMIT", &cfg.DisplayTokenLimit)
	e.int("MAX_TEXT_LENGTH", &cfg.MaxTextLength)
	e.int("CONCURRENCY", &cfg.Concurrency)
	e.boolean("DETECT_LANGUAGE", &cfg.DetectLanguage)
	e.duration("CACHE_TTL", &cfg.CacheTTL)
	e.str("CACHE_DIR", &cfg.CacheDir)
	e.boolean("LOG_JSON", &cfg.JSONLogs)
	e.boolean("VERBOSE", &cfg.Verbose)

	return e.err
}

// envReader parses variables and keeps the first parse error.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(name string) (string, string, bool) {
	key := EnvPrefix + name
	v, ok := e.lookup(key)
	if !ok || v == "" || e.err != nil {
		return key, "", false
	}
	return key, v, true
}

func (e *envReader) fail(key, value string, err error) {
	e.err = fmt.Errorf("%w: %s=%q: %w", ErrInvalidEnv, key, value, err)
}

func (e *envReader) str(name string, dst *string) {
	if _, v, ok := e.get(name); ok {
		*dst = v
	}
}

func (e *envReader) int(name string, dst *int) {
	key, v, ok := e.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = n
}

func (e *envReader) int64(name string, dst *int64) {
	key, v, ok := e.get(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = n
}

func (e *envReader) float(name string, dst *float64) {
	key, v, ok := e.get(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = f
}

func (e *envReader) boolean(name string, dst *bool) {
	key, v, ok := e.get(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = b
}

func (e *envReader) duration(name string, dst *time.Duration) {
	key, v, ok := e.get(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = d
}
