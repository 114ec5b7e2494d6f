package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/wordscope/internal/model"
)

// maxPieSlices limits the part-of-speech chart to the most frequent classes.
const maxPieSlices = 6

// MarkdownWriter outputs results in Markdown format using
// the nao1215/markdown builder.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WritePage outputs the page result in Markdown format.
func (w *MarkdownWriter) WritePage(page *model.PageResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wordscope Report")
	md.PlainText("")
	w.writePage(md, page, false)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs the batch result in Markdown format.
func (w *MarkdownWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wordscope Batch Report")
	md.PlainText("")

	agg := batch.AggregatedSummary
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URLs", strconv.Itoa(batch.TotalURLs)},
			{"Succeeded", strconv.Itoa(batch.SuccessCount)},
			{"Failed", strconv.Itoa(batch.ErrorCount)},
			{"Total Text Length", strconv.Itoa(agg.TotalTextLength)},
		},
	})
	md.PlainText("")

	w.writeErrors(md, batch.Errors)

	md.H2("Aggregated Top Words")
	md.PlainText("")
	w.writeSiteWordsTable(md, agg.TopWords)

	md.H2("Aggregated Words by Tag")
	md.PlainText("")
	for _, region := range model.Regions() {
		tag := agg.ByTag.Get(region)
		md.H3(region.String() + " (" + strconv.Itoa(tag.TotalTextLength) + " chars)")
		md.PlainText("")
		w.writeSiteWordsTable(md, tag.TopWords)
	}

	if len(batch.Results) > 0 {
		md.H2("Pages")
		md.PlainText("")
		for _, page := range batch.Results {
			w.writePage(md, page, true)
		}
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writePage writes the page sections. Nested pages of a batch get their
// own heading and one level deeper section headings.
func (w *MarkdownWriter) writePage(md *markdown.Markdown, page *model.PageResult, nested bool) {
	section := md.H2
	if nested {
		md.H3(page.URL)
		md.PlainText("")
		section = md.H4
	}

	language := page.Language
	if language == "" {
		language = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + page.URL + "`"},
			{"Title", escapeCell(page.Title)},
			{"Language", language},
			{"Fetched", page.FetchedAt.Format("2006-01-02 15:04:05 MST")},
			{"Text Length", strconv.Itoa(page.TextLength)},
			{"Tokens", strconv.Itoa(page.TokenCount)},
		},
	})
	md.PlainText("")

	section("Top Words")
	md.PlainText("")
	w.writeWordsTable(md, page.Summary.TopWords)

	section("Parts of Speech")
	md.PlainText("")
	w.writePOS(md, page.Summary.POSCount)

	section("Top Words by Tag")
	md.PlainText("")
	rows := make([][]string, 0, len(model.Regions()))
	for _, region := range model.Regions() {
		r := page.Region(region)
		words := make([]string, 0, len(r.Summary.TopWords))
		for _, wf := range r.Summary.TopWords {
			words = append(words, escapeCell(wf.Word)+" ("+strconv.Itoa(wf.Count)+")")
		}
		top := "-"
		if len(words) > 0 {
			top = strings.Join(words, ", ")
		}
		rows = append(rows, []string{region.String(), strconv.Itoa(r.TextLength), strconv.Itoa(r.TokenCount), top})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Tag", "Length", "Tokens", "Top Words"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWordsTable writes a ranked table of page word frequencies.
func (w *MarkdownWriter) writeWordsTable(md *markdown.Markdown, words []model.WordFrequency) {
	if len(words) == 0 {
		md.PlainText("No words matched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(words))
	for i, wf := range words {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			escapeCell(wf.Word),
			strconv.Itoa(wf.Count),
			formatPercent(wf.Percentage),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Word", "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSiteWordsTable writes a ranked table of aggregated word frequencies.
func (w *MarkdownWriter) writeSiteWordsTable(md *markdown.Markdown, words []model.SiteWordFrequency) {
	if len(words) == 0 {
		md.PlainText("No words matched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(words))
	for i, wf := range words {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			escapeCell(wf.Word),
			strconv.Itoa(wf.Count),
			strconv.Itoa(wf.SiteCount),
			formatPercent(wf.SitePercentage),
			formatPercent(wf.Percentage),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Word", "Count", "Sites", "Site Share", "Share"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePOS writes the part-of-speech table and a mermaid pie chart of
// the most frequent classes.
func (w *MarkdownWriter) writePOS(md *markdown.Markdown, counts map[string]int) {
	entries := sortedPOS(counts)
	if len(entries) == 0 {
		md.PlainText("No tokens.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.POS, strconv.Itoa(e.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Part of Speech", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Parts of Speech"),
		piechart.WithShowData(true),
	)
	for i, e := range entries {
		if i == maxPieSlices {
			break
		}
		chart.LabelAndIntValue(e.POS, uint64(e.Count)) //nolint:gosec // counts are never negative
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeErrors writes the failed URLs of a batch, if any.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, errs []model.URLError) {
	if len(errs) == 0 {
		md.Tip("Every URL was analyzed.")
		md.PlainText("")
		return
	}

	md.Warningf("%d URL(s) could not be analyzed.", len(errs))
	md.PlainText("")
	rows := make([][]string, len(errs))
	for i, e := range errs {
		rows[i] = []string{"`" + e.URL + "`", escapeCell(truncateString(e.Error, 80))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wordscope](https://github.com/nao1215/wordscope)*")
}

// escapeCell keeps page text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
