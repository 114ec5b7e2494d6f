package fetcher

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/nao1215/wordscope/internal/normalizer"
)

// ExtractMode selects how the body text is obtained.
type ExtractMode string

const (
	// ExtractFull reads the whole body after removing navigation chrome.
	ExtractFull ExtractMode = "full"

	// ExtractReadability reads only the main article found by readability,
	// falling back to ExtractFull when no article is found.
	ExtractReadability ExtractMode = "readability"
)

// ParseExtractMode converts a mode name into an ExtractMode.
func ParseExtractMode(s string) (ExtractMode, error) {
	switch ExtractMode(strings.ToLower(strings.TrimSpace(s))) {
	case ExtractFull, "":
		return ExtractFull, nil
	case ExtractReadability:
		return ExtractReadability, nil
	default:
		return "", fmt.Errorf("unknown extract mode %q", s)
	}
}

const (
	// hiddenSelector matches elements whose content is never page text.
	// Ruby annotations are dropped so readings do not duplicate the base text.
	hiddenSelector = "script, style, noscript, iframe, template, rp, rt"

	// chromeSelector matches navigation chrome excluded from the body.
	chromeSelector = "nav, header, footer, aside"
)

// blockElements are elements whose boundaries separate words.
var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "blockquote": {}, "br": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "fieldset": {}, "figcaption": {}, "figure": {}, "form": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "hr": {}, "li": {},
	"main": {}, "ol": {}, "p": {}, "pre": {}, "section": {}, "table": {}, "td": {},
	"th": {}, "tr": {}, "ul": {},
}

// Extract parses an HTML document and returns its region texts.
// pageURL is used by readability to resolve relative references and may be nil.
func Extract(htmlText string, pageURL *url.URL, mode ExtractMode) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(hiddenSelector).Remove()

	d := &Document{
		Title: normalizer.CollapseWhitespace(doc.Find("title").First().Text()),
		H1:    joinedText(doc.Find("h1")),
		H2:    joinedText(doc.Find("h2")),
	}

	doc.Find(chromeSelector).Remove()
	d.Body = normalizer.CollapseWhitespace(selectionText(doc.Find("body")))

	if mode == ExtractReadability {
		if body, ok := readableText(htmlText, pageURL); ok {
			d.Body = body
		}
	}
	return d, nil
}

// readableText returns the text of the main article, if one is found.
func readableText(htmlText string, pageURL *url.URL) (string, bool) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(htmlText), pageURL)
	if err != nil || article.Content == "" {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", false
	}
	doc.Find(hiddenSelector).Remove()

	text := normalizer.CollapseWhitespace(selectionText(doc.Selection))
	return text, text != ""
}

// joinedText returns the text of every selected element, joined by a space.
func joinedText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := normalizer.CollapseWhitespace(selectionText(s)); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// selectionText returns the text content of the selection, separating
// block-level elements by a space. Inline elements are concatenated so
// that words split by markup such as <b> or <ruby> stay intact.
func selectionText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	_, block := blockElements[n.Data]
	if n.Type == html.ElementNode && block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if n.Type == html.ElementNode && block {
		b.WriteByte(' ')
	}
}
