package pipeline

import "errors"

var (
	// ErrFetchFailed wraps failures to retrieve a page.
	ErrFetchFailed = errors.New("failed to fetch page")

	// ErrTokenizeFailed wraps failures of the morphological analyzer.
	ErrTokenizeFailed = errors.New("failed to tokenize text")

	// ErrAnalysisPanicked is recorded for a batch URL whose analysis panicked.
	ErrAnalysisPanicked = errors.New("page analysis panicked")
)
