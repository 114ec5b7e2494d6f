package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/wordscope/internal/langdetect"
	"github.com/nao1215/wordscope/internal/model"
	"github.com/nao1215/wordscope/internal/tokenizer"
)

// PageAnalyzer analyzes a single URL.
type PageAnalyzer interface {
	AnalyzePage(ctx context.Context, url string) (*model.PageResult, error)
}

// Analyzer runs the standard analysis steps for one page.
// An Analyzer is safe for concurrent use.
type Analyzer struct {
	source            PageSource
	tokenizer         tokenizer.Tokenizer
	detector          langdetect.Detector
	maxTextLength     int
	displayTokenLimit int
	logger            *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLanguageDetector enables language detection of the body text.
func WithLanguageDetector(d langdetect.Detector) AnalyzerOption {
	return func(a *Analyzer) {
		a.detector = d
	}
}

// WithMaxTextLength cuts every region text to n characters before
// tokenization. Zero or a negative value disables the cut.
func WithMaxTextLength(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.maxTextLength = n
	}
}

// WithDisplayTokenLimit sets how many body tokens a result lists.
func WithDisplayTokenLimit(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.displayTokenLimit = n
	}
}

// WithAnalyzerLogger sets the logger.
func WithAnalyzerLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates an Analyzer fetching from source and tokenizing with tok.
func NewAnalyzer(source PageSource, tok tokenizer.Tokenizer, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		source:            source,
		tokenizer:         tok,
		displayTokenLimit: model.DefaultDisplayTokenLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.logger.Debug("page analyzer ready",
		"steps", a.Pipeline().StepNames(),
		"maxTextLength", a.maxTextLength,
		"displayTokenLimit", a.displayTokenLimit,
	)
	return a
}

// Pipeline returns a fresh pipeline with the configured steps.
func (a *Analyzer) Pipeline() *Pipeline {
	p := New(WithLogger(a.logger))
	p.AddStep(NewFetchStep(a.source))
	if a.detector != nil {
		p.AddStep(NewLanguageStep(a.detector, a.logger))
	}
	p.AddSteps(
		NewTokenizeStep(a.tokenizer, a.maxTextLength),
		NewSummarizeStep(a.displayTokenLimit),
	)
	return p
}

// AnalyzePage fetches url and returns its analysis.
func (a *Analyzer) AnalyzePage(ctx context.Context, url string) (*model.PageResult, error) {
	state := model.NewAnalysis(url)
	if err := a.Pipeline().Execute(ctx, state); err != nil {
		return nil, err
	}
	return state.Result, nil
}
