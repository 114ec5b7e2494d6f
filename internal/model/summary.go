package model

// WordFrequency is one ranked entry of a top-word list.
type WordFrequency struct {
	// Word is the surface form of the noun.
	Word string `json:"word"`

	// Count is the number of occurrences.
	Count int `json:"count"`

	// TotalChars is the word length in characters multiplied by Count.
	TotalChars int `json:"totalChars"`

	// Percentage is TotalChars relative to the source text length,
	// rounded to two decimals. Zero when the text length is zero.
	Percentage float64 `json:"percentage"`
}

// TextSummary is the per-text statistic computed from one token sequence.
type TextSummary struct {
	// POSCount maps each coarse part-of-speech tag to its token count.
	POSCount map[string]int `json:"posCount"`

	// TopWords is the ranked list of at most ten qualifying nouns.
	TopWords []WordFrequency `json:"topWords"`
}

// NewTextSummary returns an empty summary whose collections serialize
// as {} and [] rather than null.
func NewTextSummary() TextSummary {
	return TextSummary{
		POSCount: make(map[string]int),
		TopWords: make([]WordFrequency, 0),
	}
}

// IsEmpty reports whether the summary carries no statistics.
func (s TextSummary) IsEmpty() bool {
	return len(s.POSCount) == 0 && len(s.TopWords) == 0
}

// RegionResult is the analysis of a single region of a page.
type RegionResult struct {
	// Text is the cleaned region text.
	Text string `json:"text"`

	// TextLength is the length of Text in characters.
	TextLength int `json:"textLength"`

	// TokenCount is the number of tokens produced from Text.
	TokenCount int `json:"tokenCount"`

	// Summary is the per-text summary of Text.
	Summary TextSummary `json:"summary"`
}
