package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/wordscope/internal/cache"
	"github.com/nao1215/wordscope/internal/config"
	"github.com/nao1215/wordscope/internal/fetcher"
	"github.com/nao1215/wordscope/internal/langdetect"
	"github.com/nao1215/wordscope/internal/log"
	"github.com/nao1215/wordscope/internal/pipeline"
	"github.com/nao1215/wordscope/internal/tokenizer"
	"github.com/spf13/cobra"
)

// addAnalysisFlags registers the fetch and analysis flags shared by
// serve and analyze. Defaults are shown in the help text but only flags
// set on the command line override the file and environment.
func addAnalysisFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each page download")
	flags.String("user-agent", config.DefaultUserAgent, "User-Agent sent with every request")
	flags.Int64("max-body-size", config.DefaultMaxBodySize, "Maximum response bytes read per page")
	flags.String("extract-mode", config.DefaultExtractMode, `Body extraction mode: "full" or "readability"`)
	flags.Bool("respect-robots", false, "Honor robots.txt of analyzed sites")
	flags.Float64("host-rate", 0, "Maximum requests per second per host (0 disables)")
	flags.String("proxy", "", "SOCKS5 proxy address (host:port) for all requests")

	flags.Int("max-batch", config.DefaultMaxBatchSize, "Maximum number of URLs per batch")
	flags.IntP("concurrency", "n", config.DefaultConcurrency, "Number of batch URLs analyzed at the same time")
	flags.Int("display-tokens", config.DefaultDisplayTokenLimit, "Maximum body tokens included in a page result (0 for all)")
	flags.Int("max-text-length", 0, "Cut each tag text to this many characters before tokenizing (0 disables)")
	flags.Bool("detect-language", false, "Detect the language of each page body")

	flags.Duration("cache-ttl", 0, "Reuse fetched pages for this long (0 disables the cache)")
	flags.String("cache-dir", config.XDGCacheDir(), "Directory of the page cache")
}

// buildConfig creates a Config from the configuration file, the
// environment and the flags that were set, in increasing precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag set on the command line onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := flagReader{cmd: cmd}

	f.boolean("verbose", &cfg.Verbose)
	f.boolean("json-logs", &cfg.JSONLogs)

	f.str("listen", &cfg.ListenAddress)
	f.duration("shutdown-timeout", &cfg.ShutdownTimeout)

	f.duration("timeout", &cfg.Timeout)
	f.str("user-agent", &cfg.UserAgent)
	f.int64("max-body-size", &cfg.MaxBodySize)
	f.str("extract-mode", &cfg.ExtractMode)
	f.boolean("respect-robots", &cfg.RespectRobots)
	f.float("host-rate", &cfg.HostRate)
	f.str("proxy", &cfg.Proxy)

	f.int("max-batch", &cfg.MaxBatchSize)
	f.int("concurrency", &cfg.Concurrency)
	f.int("display-tokens", &cfg.DisplayTokenLimit)
	f.int("max-text-length", &cfg.MaxTextLength)
	f.boolean("detect-language", &cfg.DetectLanguage)

	f.duration("cache-ttl", &cfg.CacheTTL)
	f.str("cache-dir", &cfg.CacheDir)

	f.boolean("json", &cfg.JSONReport)
	f.boolean("markdown", &cfg.MarkdownReport)
	f.str("output", &cfg.ReportFile)

	return f.err
}

// flagReader reads flags that exist on the command and were changed,
// keeping the first error.
type flagReader struct {
	cmd *cobra.Command
	err error
}

func (f *flagReader) changed(name string) bool {
	if f.err != nil {
		return false
	}
	flag := f.cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func (f *flagReader) set(name string, get func() error) {
	if !f.changed(name) {
		return
	}
	if err := get(); err != nil {
		f.err = fmt.Errorf("invalid --%s: %w", name, err)
	}
}

func (f *flagReader) str(name string, dst *string) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetString(name); return })
}

func (f *flagReader) boolean(name string, dst *bool) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetBool(name); return })
}

func (f *flagReader) int(name string, dst *int) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetInt(name); return })
}

func (f *flagReader) int64(name string, dst *int64) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetInt64(name); return })
}

func (f *flagReader) float(name string, dst *float64) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetFloat64(name); return })
}

func (f *flagReader) duration(name string, dst *time.Duration) {
	f.set(name, func() (err error) { *dst, err = f.cmd.Flags().GetDuration(name); return })
}

// newLogger creates the secure logger. level is used unless verbose
// logging was requested.
func newLogger(w io.Writer, cfg *config.Config, level slog.Level) *slog.Logger {
	return log.New(w, log.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.JSONLogs,
		Level:   level,
	})
}

// services holds the analysis components built from a Config.
type services struct {
	analyzer *pipeline.Analyzer
	batch    *pipeline.BatchProcessor
	store    *cache.Store
}

// newServices wires the fetcher, optional host policy and cache, the
// tokenizer and the optional language detector into an analyzer and a
// batch processor.
func newServices(cfg *config.Config, logger *slog.Logger) (*services, error) {
	mode, err := fetcher.ParseExtractMode(cfg.ExtractMode)
	if err != nil {
		return nil, err
	}

	client, err := fetcher.NewHTTPClient(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	if cfg.Proxy != "" {
		logger.Debug("fetching through SOCKS5 proxy", "proxy", cfg.Proxy)
	}

	fetchOpts := []fetcher.Option{
		fetcher.WithHTTPClient(client),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithExtractMode(mode),
		fetcher.WithLogger(logger),
	}
	policy := fetcher.NewHostPolicy(
		fetcher.WithRobots(cfg.RespectRobots),
		fetcher.WithHostRate(cfg.HostRate),
		fetcher.WithPolicyClient(client),
		fetcher.WithPolicyUserAgent(cfg.UserAgent),
		fetcher.WithPolicyLogger(logger),
	)
	if policy.Enabled() {
		fetchOpts = append(fetchOpts, fetcher.WithHostPolicy(policy))
	}

	s := &services{}
	var source pipeline.PageSource = fetcher.New(fetchOpts...)
	if cfg.CacheEnabled() {
		opts := cache.DefaultOptions()
		opts.TTL = cfg.CacheTTL
		store, err := cache.Open(cfg.CacheDir, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open page cache: %w", err)
		}
		logger.Debug("page cache opened", "path", store.Path(), "ttl", cfg.CacheTTL)
		s.store = store
		source = cache.NewCachedSource(store, source, logger)
	}

	tok, err := tokenizer.Shared()
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}

	analyzerOpts := []pipeline.AnalyzerOption{
		pipeline.WithMaxTextLength(cfg.MaxTextLength),
		pipeline.WithDisplayTokenLimit(cfg.DisplayTokenLimit),
		pipeline.WithAnalyzerLogger(logger),
	}
	if cfg.DetectLanguage {
		analyzerOpts = append(analyzerOpts, pipeline.WithLanguageDetector(langdetect.NewLingua()))
	}

	s.analyzer = pipeline.NewAnalyzer(source, tok, analyzerOpts...)
	s.batch = pipeline.NewBatchProcessor(s.analyzer,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)
	return s, nil
}

// Close releases the page cache, if one was opened.
func (s *services) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
