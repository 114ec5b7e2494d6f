package model

// URLError reports a URL that could not be analyzed.
type URLError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// BatchResult is the response of a multi-URL analysis.
type BatchResult struct {
	Success           bool              `json:"success"`
	TotalURLs         int               `json:"totalUrls"`
	SuccessCount      int               `json:"successCount"`
	ErrorCount        int               `json:"errorCount"`
	Results           []*PageResult     `json:"results"`
	Errors            []URLError        `json:"errors"`
	AggregatedSummary AggregatedSummary `json:"aggregatedSummary"`
}

// NewBatchResult builds the envelope for the given outcome.
// Nil slices are replaced by empty ones so they serialize as [].
func NewBatchResult(total int, results []*PageResult, errs []URLError, summary AggregatedSummary) *BatchResult {
	if results == nil {
		results = make([]*PageResult, 0)
	}
	if errs == nil {
		errs = make([]URLError, 0)
	}
	return &BatchResult{
		Success:           true,
		TotalURLs:         total,
		SuccessCount:      len(results),
		ErrorCount:        len(errs),
		Results:           results,
		Errors:            errs,
		AggregatedSummary: summary,
	}
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
