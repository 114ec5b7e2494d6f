package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	URL json.RawMessage `json:"url"`
}

// analyzeMultipleRequest is the body of POST /api/analyze-multiple.
type analyzeMultipleRequest struct {
	URLs json.RawMessage `json:"urls"`
}

// decodeBody decodes a JSON object from r into v.
func decodeBody(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return nil
}

// isHTTPURL reports whether s starts with an http or https scheme.
func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseURL validates the url field of a single analysis request.
func parseURL(raw json.RawMessage) (string, error) {
	var url string
	if len(raw) == 0 || json.Unmarshal(raw, &url) != nil || !isHTTPURL(url) {
		return "", ErrInvalidURL
	}
	return url, nil
}

// parseURLs validates the urls field of a batch request. Individual
// entries are not checked; an unusable URL becomes a per-URL error.
func parseURLs(raw json.RawMessage, limit int) ([]string, error) {
	var urls []string
	if len(raw) == 0 || json.Unmarshal(raw, &urls) != nil || len(urls) == 0 {
		return nil, ErrURLListRequired
	}
	if limit > 0 && len(urls) > limit {
		return nil, tooManyURLs(limit)
	}
	return urls, nil
}

// limitError reports a batch over a configured URL limit.
// It matches ErrTooManyURLs with errors.Is.
type limitError struct {
	limit int
}

func (e *limitError) Error() string {
	return fmt.Sprintf("URLは最大%d個までです", e.limit)
}

func (e *limitError) Is(target error) bool {
	return target == ErrTooManyURLs
}

func tooManyURLs(limit int) error {
	if limit == DefaultMaxBatchSize {
		return ErrTooManyURLs
	}
	return &limitError{limit: limit}
}
