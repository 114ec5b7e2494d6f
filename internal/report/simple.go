package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/wordscope/internal/model"
)

// ruleWidth is the width of the section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether tags without any matched word are shown.
	showEmpty bool

	// verbose adds the part-of-speech breakdown of every tag.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePage outputs the page result in human-readable format.
func (w *SimpleWriter) WritePage(page *model.PageResult) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "WORDSCOPE REPORT")
	w.writePage(&sb, page)
	writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs the batch result in human-readable format.
func (w *SimpleWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "WORDSCOPE BATCH REPORT")

	agg := batch.AggregatedSummary
	fmt.Fprintf(&sb, "URLs:        %d\n", batch.TotalURLs)
	fmt.Fprintf(&sb, "Succeeded:   %d\n", batch.SuccessCount)
	fmt.Fprintf(&sb, "Failed:      %d\n", batch.ErrorCount)
	fmt.Fprintf(&sb, "Text Length: %d\n\n", agg.TotalTextLength)

	if len(batch.Errors) > 0 {
		writeSection(&sb, "ERRORS")
		for _, e := range batch.Errors {
			fmt.Fprintf(&sb, "  [x] %s\n      %s\n", e.URL, e.Error)
		}
		sb.WriteString("\n")
	}

	writeSection(&sb, "AGGREGATED TOP WORDS")
	writeSiteWords(&sb, agg.TopWords)

	for _, region := range model.Regions() {
		tag := agg.ByTag.Get(region)
		if len(tag.TopWords) == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(&sb, "[%s] %d chars\n", region, tag.TotalTextLength)
		writeSiteWords(&sb, tag.TopWords)
	}

	for _, page := range batch.Results {
		writeSection(&sb, "PAGE")
		w.writePage(&sb, page)
	}

	writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writePage writes the header and word tables of one page.
func (w *SimpleWriter) writePage(sb *strings.Builder, page *model.PageResult) {
	fmt.Fprintf(sb, "URL:         %s\n", page.URL)
	fmt.Fprintf(sb, "Title:       %s\n", page.Title)
	if page.Language != "" {
		fmt.Fprintf(sb, "Language:    %s\n", page.Language)
	}
	fmt.Fprintf(sb, "Fetched:     %s\n", page.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Text Length: %d\n", page.TextLength)
	fmt.Fprintf(sb, "Tokens:      %d\n\n", page.TokenCount)

	writeSection(sb, "TOP WORDS")
	writeWords(sb, page.Summary.TopWords)

	writeSection(sb, "PARTS OF SPEECH")
	writePOSCounts(sb, page.Summary.POSCount)

	writeSection(sb, "BY TAG")
	for _, region := range model.Regions() {
		r := page.Region(region)
		if r.TextLength == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(sb, "[%s] %d chars, %d tokens\n", region, r.TextLength, r.TokenCount)
		writeWords(sb, r.Summary.TopWords)
		if w.verbose {
			writePOSCounts(sb, r.Summary.POSCount)
		}
	}
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", (ruleWidth-len(title))/2))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func writeWords(sb *strings.Builder, words []model.WordFrequency) {
	if len(words) == 0 {
		sb.WriteString("  No words matched\n\n")
		return
	}
	for i, wf := range words {
		fmt.Fprintf(sb, "  %2d. %s  x%d  (%s)\n", i+1, wf.Word, wf.Count, formatPercent(wf.Percentage))
	}
	sb.WriteString("\n")
}

func writeSiteWords(sb *strings.Builder, words []model.SiteWordFrequency) {
	if len(words) == 0 {
		sb.WriteString("  No words matched\n\n")
		return
	}
	for i, wf := range words {
		fmt.Fprintf(sb, "  %2d. %s  x%d  on %d site(s) (%s)  (%s)\n",
			i+1, wf.Word, wf.Count, wf.SiteCount, formatPercent(wf.SitePercentage), formatPercent(wf.Percentage))
	}
	sb.WriteString("\n")
}

func writePOSCounts(sb *strings.Builder, counts map[string]int) {
	entries := sortedPOS(counts)
	if len(entries) == 0 {
		sb.WriteString("  No tokens\n\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(sb, "  %s: %d\n", e.POS, e.Count)
	}
	sb.WriteString("\n")
}

func writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by wordscope\n")
	sb.WriteString("https://github.com/nao1215/wordscope\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
