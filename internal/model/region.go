package model

// Region is a named structural slice of a page's text.
type Region string

const (
	// RegionTitle is the text of the <title> element.
	RegionTitle Region = "title"
	// RegionH1 is the text of all first-level headings.
	RegionH1 Region = "h1"
	// RegionH2 is the text of all second-level headings.
	RegionH2 Region = "h2"
	// RegionBody is the cleaned text of the whole body.
	RegionBody Region = "body"
)

// Regions returns every region in display order.
func Regions() []Region {
	return []Region{RegionTitle, RegionH1, RegionH2, RegionBody}
}

// String returns the region name.
func (r Region) String() string {
	return string(r)
}

// RegionMap holds one value per region and serializes as
// {"title": ..., "h1": ..., "h2": ..., "body": ...}.
type RegionMap[T any] struct {
	Title T `json:"title"`
	H1    T `json:"h1"`
	H2    T `json:"h2"`
	Body  T `json:"body"`
}

// Get returns the value stored for the region.
// Unknown regions return the zero value.
func (m *RegionMap[T]) Get(r Region) T {
	switch r {
	case RegionTitle:
		return m.Title
	case RegionH1:
		return m.H1
	case RegionH2:
		return m.H2
	case RegionBody:
		return m.Body
	default:
		var zero T
		return zero
	}
}

// Set stores the value for the region. Unknown regions are ignored.
func (m *RegionMap[T]) Set(r Region, v T) {
	switch r {
	case RegionTitle:
		m.Title = v
	case RegionH1:
		m.H1 = v
	case RegionH2:
		m.H2 = v
	case RegionBody:
		m.Body = v
	}
}
