package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/wordscope/internal/analysis"
	"github.com/nao1215/wordscope/internal/model"
)

// errNoResult is reported for an analyzer that returned neither a result nor an error.
var errNoResult = errors.New("analysis produced no result")

// BatchProcessor analyzes many URLs. A failing URL is recorded and never
// stops the others.
type BatchProcessor struct {
	analyzer    PageAnalyzer
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets how many pages are analyzed at once.
// Default is 1, analyzing URLs one after another.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor using analyzer for each URL.
func NewBatchProcessor(analyzer PageAnalyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// outcome is the analysis result of one URL.
type outcome struct {
	result *model.PageResult
	err    error
}

// Process analyzes every URL and splits the outcomes into results and
// errors, both in input order. Every URL ends up in exactly one of them.
func (bp *BatchProcessor) Process(ctx context.Context, urls []string) ([]*model.PageResult, []model.URLError) {
	bp.logger.Info("starting batch analysis",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	outcomes := make([]outcome, len(urls))
	if bp.concurrency <= 1 {
		for i, url := range urls {
			outcomes[i] = bp.analyze(ctx, i, len(urls), url)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(bp.concurrency)
		for i, url := range urls {
			g.Go(func() error {
				outcomes[i] = bp.analyze(ctx, i, len(urls), url)
				return nil
			})
		}
		_ = g.Wait() //nolint:errcheck // failures are recorded per URL
	}

	results := make([]*model.PageResult, 0, len(urls))
	errs := make([]model.URLError, 0)
	for i, o := range outcomes {
		if o.err != nil {
			errs = append(errs, model.URLError{URL: urls[i], Error: o.err.Error()})
			continue
		}
		results = append(results, o.result)
	}

	bp.logger.Info("batch analysis complete",
		"total_urls", len(urls),
		"succeeded", len(results),
		"failed", len(errs),
		"elapsed", time.Since(start),
	)
	return results, errs
}

// Run processes urls and aggregates the successful results.
func (bp *BatchProcessor) Run(ctx context.Context, urls []string) *model.BatchResult {
	results, errs := bp.Process(ctx, urls)
	return model.NewBatchResult(len(urls), results, errs, analysis.Aggregate(results))
}

// analyze runs the analyzer for one URL. A panic is recovered and recorded
// as that URL's error. Successful results list every body token.
func (bp *BatchProcessor) analyze(ctx context.Context, index, total int, url string) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			bp.logger.Error("page analysis panicked", "url", url, "panic", r)
			o = outcome{err: fmt.Errorf("%w: %v", ErrAnalysisPanicked, r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}

	bp.logger.Debug("analyzing page",
		"url", url,
		"index", index+1,
		"total", total,
	)

	result, err := bp.analyzer.AnalyzePage(ctx, url)
	if err != nil {
		bp.logger.Warn("page analysis failed", "url", url, "error", err)
		return outcome{err: err}
	}
	if result == nil {
		return outcome{err: errNoResult}
	}
	result.ShowAllTokens()
	return outcome{result: result}
}
