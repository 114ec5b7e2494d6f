package analysis

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/wordscope/internal/model"
)

// newPage builds a page result the way the pipeline does: the body tokens
// feed both the overall token list and the body region summary.
func newPage(url string, bodyLength int, body []model.Token) *model.PageResult {
	p := &model.PageResult{
		URL:        url,
		TextLength: bodyLength,
		Summary:    Summarize(body, bodyLength),
	}
	p.SetAllTokens(body, model.DefaultDisplayTokenLimit)
	p.TagAnalysis.Set(model.RegionBody, model.RegionResult{
		TextLength: bodyLength,
		TokenCount: len(body),
		Summary:    p.Summary,
	})
	return p
}

// setRegion attaches a region analysis computed from tokens.
func setRegion(p *model.PageResult, region model.Region, length int, tokens []model.Token) {
	p.TagAnalysis.Set(region, model.RegionResult{
		TextLength: length,
		TokenCount: len(tokens),
		Summary:    Summarize(tokens, length),
	})
}

func findWord(words []model.SiteWordFrequency, word string) (model.SiteWordFrequency, bool) {
	for _, w := range words {
		if w.Word == word {
			return w, true
		}
	}
	return model.SiteWordFrequency{}, false
}

// TestAggregate tests the overall cross-page ranking.
func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("word on two pages is counted on both", func(t *testing.T) {
		t.Parallel()

		results := []*model.PageResult{
			newPage("https://a.example", 10, []model.Token{noun("解析")}),
			newPage("https://b.example", 10, []model.Token{noun("解析")}),
		}
		got := Aggregate(results)

		w, ok := findWord(got.TopWords, "解析")
		if !ok {
			t.Fatalf("expected 解析 in %v", got.TopWords)
		}
		if w.Count != 2 || w.SiteCount != 2 || w.SitePercentage != 100.0 {
			t.Errorf("expected count 2, siteCount 2, sitePercentage 100, got %+v", w)
		}
		if w.TotalChars != 4 || w.Percentage != 20 {
			t.Errorf("expected totalChars 4 and percentage 20, got %+v", w)
		}
		if got.TotalSites != 2 || got.TotalTextLength != 20 {
			t.Errorf("expected 2 sites and length 20, got %d and %d", got.TotalSites, got.TotalTextLength)
		}
	})

	t.Run("page coverage ranks before occurrence count", func(t *testing.T) {
		t.Parallel()

		results := []*model.PageResult{
			newPage("https://a.example", 100, []model.Token{
				noun("解析"), noun("解析"), noun("解析"), noun("解析"), noun("解析"), noun("形態素"),
			}),
			newPage("https://b.example", 100, []model.Token{noun("形態素")}),
		}
		got := Aggregate(results)

		if len(got.TopWords) != 2 {
			t.Fatalf("expected 2 words, got %v", got.TopWords)
		}
		if got.TopWords[0].Word != "形態素" || got.TopWords[1].Word != "解析" {
			t.Errorf("expected [形態素 解析], got [%s %s]", got.TopWords[0].Word, got.TopWords[1].Word)
		}
		if got.TopWords[1].SitePercentage != 50.0 {
			t.Errorf("expected sitePercentage 50, got %v", got.TopWords[1].SitePercentage)
		}
	})

	t.Run("same page count ranks by occurrence count", func(t *testing.T) {
		t.Parallel()

		results := []*model.PageResult{
			newPage("https://a.example", 100, []model.Token{noun("東京"), noun("大阪"), noun("大阪")}),
		}
		got := Aggregate(results)

		if got.TopWords[0].Word != "大阪" {
			t.Errorf("expected 大阪 first, got %s", got.TopWords[0].Word)
		}
	})

	t.Run("result does not depend on page order", func(t *testing.T) {
		t.Parallel()

		pages := []*model.PageResult{
			newPage("https://a.example", 30, []model.Token{noun("東京"), noun("大阪"), noun("京都")}),
			newPage("https://b.example", 30, []model.Token{noun("京都"), noun("神戸"), noun("東京")}),
			newPage("https://c.example", 30, []model.Token{noun("神戸"), noun("大阪"), noun("奈良")}),
		}
		reversed := slices.Clone(pages)
		slices.Reverse(reversed)

		a := Aggregate(pages)
		b := Aggregate(reversed)

		if !reflect.DeepEqual(a, b) {
			t.Errorf("expected identical summaries\n%+v\n%+v", a.TopWords, b.TopWords)
		}
	})

	t.Run("overall ranking sees every body token", func(t *testing.T) {
		t.Parallel()

		// Twelve words outrank 単語 on the page, pushing it out of the body top ten.
		var body []model.Token
		for i := range 12 {
			w := fmt.Sprintf("上位%02d", i)
			body = append(body, noun(w), noun(w))
		}
		body = append(body, noun("単語"))
		results := []*model.PageResult{newPage("https://a.example", 500, body)}

		got := Aggregate(results)

		if _, ok := findWord(got.TopWords, "単語"); !ok {
			t.Error("expected 単語 in overall ranking")
		}
		if _, ok := findWord(got.ByTag.Body.TopWords, "単語"); ok {
			t.Error("expected 単語 to be absent from the body region ranking")
		}
	})

	t.Run("overall ranking uses tokens beyond the display cap", func(t *testing.T) {
		t.Parallel()

		var body []model.Token
		for range 150 {
			body = append(body, token("の", "助詞"))
		}
		body = append(body, noun("末尾"))
		results := []*model.PageResult{newPage("https://a.example", 200, body)}

		got := Aggregate(results)

		if _, ok := findWord(got.TopWords, "末尾"); !ok {
			t.Error("expected 末尾 from beyond the display cap")
		}
	})

	t.Run("caps ranking at twenty", func(t *testing.T) {
		t.Parallel()

		var body []model.Token
		for i := range 30 {
			body = append(body, noun(fmt.Sprintf("語彙%02d", i)))
		}
		got := Aggregate([]*model.PageResult{newPage("https://a.example", 300, body)})

		if len(got.TopWords) != AggregateTopWordsLimit {
			t.Errorf("expected %d words, got %d", AggregateTopWordsLimit, len(got.TopWords))
		}
	})

	t.Run("empty input yields empty summary", func(t *testing.T) {
		t.Parallel()

		got := Aggregate(nil)

		if got.TotalSites != 0 || got.TotalTextLength != 0 {
			t.Errorf("expected zero totals, got %+v", got)
		}
		if got.TopWords == nil || len(got.TopWords) != 0 {
			t.Errorf("expected empty non-nil top words, got %v", got.TopWords)
		}
		for _, r := range model.Regions() {
			if got.ByTag.Get(r).TopWords == nil {
				t.Errorf("expected non-nil top words for %s", r)
			}
		}
	})

	t.Run("nil results are skipped", func(t *testing.T) {
		t.Parallel()

		got := Aggregate([]*model.PageResult{nil, newPage("https://a.example", 10, []model.Token{noun("解析")})})

		if got.TotalSites != 1 {
			t.Errorf("expected 1 site, got %d", got.TotalSites)
		}
	})
}

// TestAggregateByTag tests the per-region rankings.
func TestAggregateByTag(t *testing.T) {
	t.Parallel()

	t.Run("regions use their own length as denominator", func(t *testing.T) {
		t.Parallel()

		a := newPage("https://a.example", 100, []model.Token{noun("本文")})
		setRegion(a, model.RegionTitle, 4, []model.Token{noun("東京"), token("の", "助詞"), noun("天気")})
		b := newPage("https://b.example", 100, []model.Token{noun("本文")})
		setRegion(b, model.RegionTitle, 6, []model.Token{noun("東京"), noun("観光")})

		got := Aggregate([]*model.PageResult{a, b})
		title := got.ByTag.Title

		if title.TotalTextLength != 10 {
			t.Errorf("expected title length 10, got %d", title.TotalTextLength)
		}
		w, ok := findWord(title.TopWords, "東京")
		if !ok {
			t.Fatalf("expected 東京 in %v", title.TopWords)
		}
		if w.Count != 2 || w.SiteCount != 2 || w.Percentage != 40 || w.SitePercentage != 100 {
			t.Errorf("unexpected 東京 entry: %+v", w)
		}
		if title.TopWords[0].Word != "東京" {
			t.Errorf("expected 東京 first, got %s", title.TopWords[0].Word)
		}
	})

	t.Run("region counts come from page top words", func(t *testing.T) {
		t.Parallel()

		a := newPage("https://a.example", 100, nil)
		setRegion(a, model.RegionH1, 20, []model.Token{noun("見出し"), noun("見出し"), noun("見出し")})

		got := Aggregate([]*model.PageResult{a})
		w, ok := findWord(got.ByTag.H1.TopWords, "見出し")
		if !ok {
			t.Fatal("expected 見出し in h1 ranking")
		}
		if w.Count != 3 || w.TotalChars != 9 || w.Percentage != 45 {
			t.Errorf("unexpected entry: %+v", w)
		}
	})

	t.Run("zero region length yields zero percentage", func(t *testing.T) {
		t.Parallel()

		a := newPage("https://a.example", 100, nil)
		a.TagAnalysis.Set(model.RegionH2, model.RegionResult{
			Summary: model.TextSummary{
				POSCount: map[string]int{"名詞": 1},
				TopWords: []model.WordFrequency{{Word: "小見出し", Count: 1, TotalChars: 4}},
			},
		})

		got := Aggregate([]*model.PageResult{a})
		if got.ByTag.H2.TotalTextLength != 0 {
			t.Errorf("expected zero length, got %d", got.ByTag.H2.TotalTextLength)
		}
		if len(got.ByTag.H2.TopWords) != 1 || got.ByTag.H2.TopWords[0].Percentage != 0 {
			t.Errorf("expected one entry with zero percentage, got %v", got.ByTag.H2.TopWords)
		}
	})

	t.Run("exact ties are ordered by word", func(t *testing.T) {
		t.Parallel()

		a := newPage("https://a.example", 100, []model.Token{noun("ぶどう"), noun("りんご"), noun("いちご")})

		got := Aggregate([]*model.PageResult{a})
		var words []string
		for _, w := range got.TopWords {
			words = append(words, w.Word)
		}
		want := []string{"いちご", "ぶどう", "りんご"}
		if strings.Join(words, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, words)
		}
	})
}
