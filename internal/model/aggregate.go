package model

// SiteWordFrequency is a top word aggregated across pages.
type SiteWordFrequency struct {
	WordFrequency

	// SiteCount is the number of distinct pages containing the word.
	SiteCount int `json:"siteCount"`

	// SitePercentage is SiteCount relative to the number of pages,
	// rounded to one decimal.
	SitePercentage float64 `json:"sitePercentage"`
}

// TagAggregate is the aggregate of one region across pages.
type TagAggregate struct {
	// TotalTextLength is the summed region text length across pages.
	TotalTextLength int `json:"totalTextLength"`

	// TopWords is the ranked list of at most twenty words.
	TopWords []SiteWordFrequency `json:"topWords"`
}

// AggregatedSummary merges noun frequencies across all successful pages.
type AggregatedSummary struct {
	// TotalSites is the number of pages aggregated.
	TotalSites int `json:"totalSites"`

	// TotalTextLength is the summed body text length across pages.
	TotalTextLength int `json:"totalTextLength"`

	// TopWords is the overall ranking derived from every body token.
	TopWords []SiteWordFrequency `json:"topWords"`

	// ByTag holds the ranking of each region, derived from each page's
	// per-region top words.
	ByTag RegionMap[TagAggregate] `json:"byTag"`
}
