package analysis

import (
	"slices"
	"strings"

	"github.com/nao1215/wordscope/internal/model"
)

const (
	// AggregateTopWordsLimit is the number of words kept in an aggregate ranking.
	AggregateTopWordsLimit = 20

	// sitePercentagePlaces is the precision of page-coverage percentages.
	sitePercentagePlaces = 1
)

// siteWord accumulates one word across pages.
type siteWord struct {
	word  string
	count int
	urls  map[string]struct{}
}

// siteCounter accumulates words together with the set of pages they occur on.
type siteCounter struct {
	words map[string]*siteWord
}

func newSiteCounter() *siteCounter {
	return &siteCounter{words: make(map[string]*siteWord)}
}

func (c *siteCounter) add(word, url string, n int) {
	w, ok := c.words[word]
	if !ok {
		w = &siteWord{word: word, urls: make(map[string]struct{})}
		c.words[word] = w
	}
	w.count += n
	w.urls[url] = struct{}{}
}

// rank orders the words by distinct page count, then by occurrence count,
// then by word, and converts the first limit entries.
func (c *siteCounter) rank(totalTextLength, totalSites int) []model.SiteWordFrequency {
	entries := make([]*siteWord, 0, len(c.words))
	for _, w := range c.words {
		entries = append(entries, w)
	}

	slices.SortFunc(entries, func(a, b *siteWord) int {
		if len(a.urls) != len(b.urls) {
			return len(b.urls) - len(a.urls)
		}
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.word, b.word)
	})
	if len(entries) > AggregateTopWordsLimit {
		entries = entries[:AggregateTopWordsLimit]
	}

	out := make([]model.SiteWordFrequency, 0, len(entries))
	for _, w := range entries {
		out = append(out, model.SiteWordFrequency{
			WordFrequency:  newWordFrequency(w.word, w.count, totalTextLength),
			SiteCount:      len(w.urls),
			SitePercentage: percentage(len(w.urls), totalSites, sitePercentagePlaces),
		})
	}
	return out
}

// Aggregate merges the results of several successfully analyzed pages.
//
// The overall ranking counts every qualifying body token of every page and
// uses the summed body length as the percentage denominator. Each regional
// ranking is built from the pages' per-region top words and uses the summed
// length of that region. Pages are identified by URL, so two results with
// the same URL count as one page for coverage.
func Aggregate(results []*model.PageResult) model.AggregatedSummary {
	results = slices.DeleteFunc(slices.Clone(results), func(r *model.PageResult) bool {
		return r == nil
	})
	summary := model.AggregatedSummary{
		TotalSites: len(results),
	}

	overall := newSiteCounter()
	for _, r := range results {
		summary.TotalTextLength += r.TextLength
		for _, t := range r.AllTokens() {
			if IsCountedWord(t) {
				overall.add(t.Surface, r.URL, 1)
			}
		}
	}
	summary.TopWords = overall.rank(summary.TotalTextLength, summary.TotalSites)

	for _, region := range model.Regions() {
		summary.ByTag.Set(region, aggregateRegion(results, region))
	}
	return summary
}

// aggregateRegion merges the per-region top words of every page.
func aggregateRegion(results []*model.PageResult, region model.Region) model.TagAggregate {
	agg := model.TagAggregate{}
	counter := newSiteCounter()

	for _, r := range results {
		rr := r.Region(region)
		agg.TotalTextLength += rr.TextLength
		for _, w := range rr.Summary.TopWords {
			counter.add(w.Word, r.URL, w.Count)
		}
	}

	agg.TopWords = counter.rank(agg.TotalTextLength, len(results))
	return agg
}
