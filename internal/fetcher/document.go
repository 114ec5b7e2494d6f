package fetcher

import (
	"time"

	"github.com/nao1215/wordscope/internal/model"
)

// Document is the cleaned text extracted from one page.
type Document struct {
	// URL is the URL that was requested.
	URL string

	// Title is the text of the <title> element.
	Title string

	// H1 is the text of every <h1> element, joined by a space.
	H1 string

	// H2 is the text of every <h2> element, joined by a space.
	H2 string

	// Body is the text of <body> without navigation chrome.
	Body string

	// FetchedAt is when the page was downloaded.
	FetchedAt time.Time
}

// Texts returns the region texts of the document.
func (d *Document) Texts() model.RegionMap[string] {
	return model.RegionMap[string]{
		Title: d.Title,
		H1:    d.H1,
		H2:    d.H2,
		Body:  d.Body,
	}
}
