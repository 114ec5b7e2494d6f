package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/wordscope/internal/analysis"
	"github.com/nao1215/wordscope/internal/fetcher"
	"github.com/nao1215/wordscope/internal/langdetect"
	"github.com/nao1215/wordscope/internal/model"
	"github.com/nao1215/wordscope/internal/normalizer"
	"github.com/nao1215/wordscope/internal/tokenizer"
)

// PageSource retrieves the region texts of a page. It is implemented by
// *fetcher.Fetcher and *cache.CachedSource.
type PageSource interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// FetchStep downloads the page and stores its region texts.
type FetchStep struct {
	source PageSource
}

// NewFetchStep creates a FetchStep reading from source.
func NewFetchStep(source PageSource) *FetchStep {
	return &FetchStep{source: source}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, a *model.Analysis) error {
	doc, err := s.source.Fetch(ctx, a.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	a.Texts = doc.Texts()
	a.FetchedAt = doc.FetchedAt
	return nil
}

// LanguageStep records the language of the body text. Detection never
// fails the analysis; an undetermined language is left empty.
type LanguageStep struct {
	detector langdetect.Detector
	logger   *slog.Logger
}

// NewLanguageStep creates a LanguageStep using detector.
func NewLanguageStep(detector langdetect.Detector, logger *slog.Logger) *LanguageStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageStep{detector: detector, logger: logger}
}

// Name returns the step name.
func (s *LanguageStep) Name() string {
	return "detect_language"
}

// Do executes the language detection step.
func (s *LanguageStep) Do(_ context.Context, a *model.Analysis) error {
	lang, ok := s.detector.Detect(a.Texts.Body)
	if !ok {
		s.logger.Debug("language not detected", "url", a.URL)
		return nil
	}
	a.Language = lang
	return nil
}

// TokenizeStep tokenizes the text of every region. When maxTextLength is
// positive, region texts are first cut to that many characters.
type TokenizeStep struct {
	tokenizer     tokenizer.Tokenizer
	maxTextLength int
}

// NewTokenizeStep creates a TokenizeStep.
func NewTokenizeStep(tok tokenizer.Tokenizer, maxTextLength int) *TokenizeStep {
	return &TokenizeStep{tokenizer: tok, maxTextLength: maxTextLength}
}

// Name returns the step name.
func (s *TokenizeStep) Name() string {
	return "tokenize"
}

// Do executes the tokenize step. Empty regions are not tokenized.
func (s *TokenizeStep) Do(ctx context.Context, a *model.Analysis) error {
	for _, region := range model.Regions() {
		text := normalizer.Truncate(a.Texts.Get(region), s.maxTextLength)
		a.Texts.Set(region, text)
		if text == "" {
			a.Tokens.Set(region, nil)
			continue
		}

		tokens, err := s.tokenizer.Tokenize(ctx, text)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrTokenizeFailed, region, err)
		}
		a.Tokens.Set(region, tokens)
	}
	return nil
}

// SummarizeStep computes the per-region summaries and assembles the page result.
type SummarizeStep struct {
	displayTokenLimit int
}

// NewSummarizeStep creates a SummarizeStep that returns at most
// displayTokenLimit body tokens for display.
func NewSummarizeStep(displayTokenLimit int) *SummarizeStep {
	return &SummarizeStep{displayTokenLimit: displayTokenLimit}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarize step.
func (s *SummarizeStep) Do(_ context.Context, a *model.Analysis) error {
	result := &model.PageResult{
		URL:       a.URL,
		Title:     a.Texts.Title,
		Language:  a.Language,
		FetchedAt: a.FetchedAt,
	}

	for _, region := range model.Regions() {
		text := a.Texts.Get(region)
		tokens := a.Tokens.Get(region)
		length := normalizer.Length(text)

		result.TagAnalysis.Set(region, model.RegionResult{
			Text:       text,
			TextLength: length,
			TokenCount: len(tokens),
			Summary:    analysis.Summarize(tokens, length),
		})
	}

	body := result.TagAnalysis.Body
	result.Text = body.Text
	result.TextLength = body.TextLength
	result.Summary = body.Summary
	result.SetAllTokens(a.Tokens.Body, s.displayTokenLimit)

	a.Result = result
	return nil
}
