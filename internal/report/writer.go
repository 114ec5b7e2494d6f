package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/nao1215/wordscope/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
type Writer interface {
	// WritePage outputs the result of a single page analysis.
	// Returns the number of bytes written and any error encountered.
	WritePage(page *model.PageResult) (int, error)

	// WriteBatch outputs the result of a multi-page analysis.
	WriteBatch(batch *model.BatchResult) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// posEntry is one row of a part-of-speech table.
type posEntry struct {
	POS   string
	Count int
}

// sortedPOS orders part-of-speech counts by count, most frequent first.
// Equal counts are ordered by name so output is stable.
func sortedPOS(counts map[string]int) []posEntry {
	entries := make([]posEntry, 0, len(counts))
	for pos, n := range counts {
		entries = append(entries, posEntry{POS: pos, Count: n})
	}
	slices.SortFunc(entries, func(a, b posEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.POS, b.POS)
	})
	return entries
}

// formatPercent renders a percentage rounded to two places.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// truncateString truncates a string to maxLen characters with ellipsis.
// Length is counted in runes so multi-byte text is never split.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
