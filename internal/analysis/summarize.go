package analysis

import (
	"slices"

	"github.com/nao1215/wordscope/internal/model"
	"github.com/nao1215/wordscope/internal/normalizer"
)

const (
	// TopWordsLimit is the number of words kept in a per-text summary.
	TopWordsLimit = 10

	// minWordLength is the minimum length, exclusive, of a counted word.
	minWordLength = 1

	// charPercentagePlaces is the precision of character percentages.
	charPercentagePlaces = 2
)

// IsCountedWord reports whether a token takes part in word rankings:
// its coarse part of speech is a noun and its surface is longer than one character.
func IsCountedWord(t model.Token) bool {
	return t.IsNoun() && normalizer.Length(t.Surface) > minWordLength
}

// wordCounter counts surface forms and remembers first-occurrence order.
type wordCounter struct {
	counts map[string]int
	order  []string
}

func newWordCounter() *wordCounter {
	return &wordCounter{counts: make(map[string]int)}
}

func (c *wordCounter) add(word string, n int) {
	if _, ok := c.counts[word]; !ok {
		c.order = append(c.order, word)
	}
	c.counts[word] += n
}

// Summarize computes the per-text summary of tokens derived from a text of
// textLength characters.
//
// Every token contributes to the part-of-speech counts. Nouns longer than
// one character are ranked by descending count; ties keep the order of
// first occurrence. At most TopWordsLimit words are returned.
func Summarize(tokens []model.Token, textLength int) model.TextSummary {
	summary := model.NewTextSummary()
	counter := newWordCounter()

	for _, t := range tokens {
		summary.POSCount[t.POS]++
		if IsCountedWord(t) {
			counter.add(t.Surface, 1)
		}
	}

	ranked := slices.Clone(counter.order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return counter.counts[b] - counter.counts[a]
	})
	if len(ranked) > TopWordsLimit {
		ranked = ranked[:TopWordsLimit]
	}

	for _, word := range ranked {
		summary.TopWords = append(summary.TopWords, newWordFrequency(word, counter.counts[word], textLength))
	}
	return summary
}

// newWordFrequency computes the character totals of a word.
func newWordFrequency(word string, count, textLength int) model.WordFrequency {
	totalChars := normalizer.Length(word) * count
	return model.WordFrequency{
		Word:       word,
		Count:      count,
		TotalChars: totalChars,
		Percentage: percentage(totalChars, textLength, charPercentagePlaces),
	}
}
