package model

import "time"

// Analysis carries the intermediate state of one page through the
// analysis pipeline. Steps read what earlier steps stored and add their
// own output; the final step fills Result.
type Analysis struct {
	// URL is the page being analyzed.
	URL string

	// Texts holds the cleaned text of each region.
	Texts RegionMap[string]

	// FetchedAt is when the texts were retrieved.
	FetchedAt time.Time

	// Tokens holds the token sequence of each region.
	Tokens RegionMap[[]Token]

	// Language is the detected language of the body, if detection ran.
	Language string

	// PerformedSteps lists the names of the steps that completed.
	PerformedSteps []string

	// Result is the assembled page result.
	Result *PageResult
}

// NewAnalysis creates the pipeline state for a URL.
func NewAnalysis(url string) *Analysis {
	return &Analysis{
		URL:            url,
		PerformedSteps: make([]string, 0),
	}
}
