package model

import (
	"time"
)

// DefaultDisplayTokenLimit is the number of tokens returned in PageResult.Tokens.
const DefaultDisplayTokenLimit = 100

// PageResult contains everything computed for one fetched page.
//
// Counts and summaries are computed over the full token list; Tokens only
// holds the first tokens for display. The full body token list stays
// available to the aggregator through AllTokens.
type PageResult struct {
	// URL is the source URL as requested.
	URL string `json:"url"`

	// Title is the page title.
	Title string `json:"title"`

	// Text is the cleaned body text.
	Text string `json:"text"`

	// TextLength is the length of Text in characters.
	TextLength int `json:"textLength"`

	// TokenCount is the total number of body tokens.
	TokenCount int `json:"tokenCount"`

	// Tokens is the display list of body tokens.
	Tokens []Token `json:"tokens"`

	// Summary is the per-text summary of the body.
	Summary TextSummary `json:"summary"`

	// TagAnalysis holds one RegionResult per region.
	TagAnalysis RegionMap[RegionResult] `json:"tagAnalysis"`

	// Language is the detected language of the body text.
	// Empty when language detection is disabled.
	Language string `json:"language,omitempty"`

	// FetchedAt is when the page text was retrieved.
	FetchedAt time.Time `json:"fetchedAt"`

	// allTokens is the complete body token list.
	allTokens []Token
}

// SetAllTokens stores the complete body token list and fills Tokens with
// at most limit entries. A non-positive limit keeps every token.
func (p *PageResult) SetAllTokens(tokens []Token, limit int) {
	p.allTokens = tokens
	p.TokenCount = len(tokens)
	p.Tokens = DisplayTokens(tokens, limit)
}

// AllTokens returns the complete body token list.
// Results that were built without SetAllTokens fall back to Tokens.
func (p *PageResult) AllTokens() []Token {
	if p.allTokens != nil {
		return p.allTokens
	}
	return p.Tokens
}

// ShowAllTokens replaces the display list with the complete body token list.
func (p *PageResult) ShowAllTokens() {
	p.Tokens = DisplayTokens(p.AllTokens(), 0)
}

// Region returns the analysis of the given region.
func (p *PageResult) Region(r Region) RegionResult {
	return p.TagAnalysis.Get(r)
}

// DisplayTokens returns the first limit tokens. The returned slice is never nil.
func DisplayTokens(tokens []Token, limit int) []Token {
	if limit <= 0 || len(tokens) <= limit {
		out := make([]Token, len(tokens))
		copy(out, tokens)
		return out
	}
	out := make([]Token, limit)
	copy(out, tokens[:limit])
	return out
}
