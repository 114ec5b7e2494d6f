package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/wordscope/internal/fetcher"
	"github.com/nao1215/wordscope/internal/model"
)

// fakeAnalyzer fails for URLs containing "fail" and tracks concurrency.
type fakeAnalyzer struct {
	delay   time.Duration
	active  atomic.Int32
	peak    atomic.Int32
	mu      sync.Mutex
	visited []string
}

func (f *fakeAnalyzer) AnalyzePage(_ context.Context, url string) (*model.PageResult, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.visited = append(f.visited, url)
	f.mu.Unlock()

	time.Sleep(f.delay)
	if strings.Contains(url, "fail") {
		return nil, fmt.Errorf("%w: %s", fetcher.ErrUnexpectedStatus, url)
	}
	return &model.PageResult{URL: url}, nil
}

// panicAnalyzer panics for URLs containing "panic".
type panicAnalyzer struct{}

func (panicAnalyzer) AnalyzePage(_ context.Context, url string) (*model.PageResult, error) {
	if strings.Contains(url, "panic") {
		panic("extractor exploded")
	}
	return &model.PageResult{URL: url}, nil
}

func TestNewBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("defaults to sequential processing", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&fakeAnalyzer{})
		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&fakeAnalyzer{}, WithConcurrency(0))
		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
	})
}

func TestBatchProcessorProcess(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://a.example",
		"https://fail-1.example",
		"https://b.example",
		"https://fail-2.example",
		"https://c.example",
	}

	for _, concurrency := range []int{1, 3} {
		t.Run(fmt.Sprintf("concurrency %d keeps counts and order", concurrency), func(t *testing.T) {
			t.Parallel()

			bp := NewBatchProcessor(&fakeAnalyzer{delay: 5 * time.Millisecond}, WithConcurrency(concurrency))
			results, errs := bp.Process(context.Background(), urls)

			if len(results)+len(errs) != len(urls) {
				t.Fatalf("expected %d outcomes, got %d", len(urls), len(results)+len(errs))
			}
			if len(results) != 3 || len(errs) != 2 {
				t.Fatalf("expected 3 results and 2 errors, got %d and %d", len(results), len(errs))
			}
			for i, want := range []string{"https://a.example", "https://b.example", "https://c.example"} {
				if results[i].URL != want {
					t.Errorf("result %d: expected %s, got %s", i, want, results[i].URL)
				}
			}
			if errs[0].URL != "https://fail-1.example" || errs[1].URL != "https://fail-2.example" {
				t.Errorf("unexpected error order %v", errs)
			}
			if !strings.Contains(errs[0].Error, "unexpected HTTP status") {
				t.Errorf("expected failure message, got %q", errs[0].Error)
			}
		})
	}

	t.Run("sequential processing visits URLs in order", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAnalyzer{}
		NewBatchProcessor(fa).Process(context.Background(), urls)

		if fa.peak.Load() != 1 {
			t.Errorf("expected one page at a time, got %d", fa.peak.Load())
		}
		for i, u := range urls {
			if fa.visited[i] != u {
				t.Errorf("visit %d: expected %s, got %s", i, u, fa.visited[i])
			}
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAnalyzer{delay: 20 * time.Millisecond}
		many := make([]string, 10)
		for i := range many {
			many[i] = fmt.Sprintf("https://%d.example", i)
		}
		NewBatchProcessor(fa, WithConcurrency(3)).Process(context.Background(), many)

		if peak := fa.peak.Load(); peak > 3 {
			t.Errorf("expected at most 3 concurrent pages, got %d", peak)
		}
	})

	t.Run("cancelled context turns every URL into an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fa := &fakeAnalyzer{}
		results, errs := NewBatchProcessor(fa).Process(ctx, urls)

		if len(results) != 0 || len(errs) != len(urls) {
			t.Errorf("expected %d errors, got %d results and %d errors", len(urls), len(results), len(errs))
		}
		if len(fa.visited) != 0 {
			t.Error("expected no page to be analyzed")
		}
	})

	for _, concurrency := range []int{1, 2} {
		t.Run(fmt.Sprintf("panic at concurrency %d becomes that URL's error", concurrency), func(t *testing.T) {
			t.Parallel()

			bp := NewBatchProcessor(panicAnalyzer{}, WithConcurrency(concurrency))
			results, errs := bp.Process(context.Background(), []string{
				"https://a.example",
				"https://panic.example",
				"https://b.example",
			})

			if len(results) != 2 || len(errs) != 1 {
				t.Fatalf("expected 2 results and 1 error, got %d and %d", len(results), len(errs))
			}
			if errs[0].URL != "https://panic.example" {
				t.Errorf("expected the panicking URL in errors, got %s", errs[0].URL)
			}
			if !strings.HasPrefix(errs[0].Error, ErrAnalysisPanicked.Error()) || !strings.Contains(errs[0].Error, "extractor exploded") {
				t.Errorf("unexpected error message %q", errs[0].Error)
			}
		})
	}

	t.Run("empty input yields empty outcome", func(t *testing.T) {
		t.Parallel()

		results, errs := NewBatchProcessor(&fakeAnalyzer{}).Process(context.Background(), nil)
		if results == nil || errs == nil || len(results) != 0 || len(errs) != 0 {
			t.Errorf("expected empty non-nil slices, got %v and %v", results, errs)
		}
	})
}

func TestBatchProcessorRun(t *testing.T) {
	t.Parallel()

	src := &fakeSource{docs: map[string]*fetcher.Document{
		"https://a.example": newDoc("", "", "", "解析 の 本"),
		"https://b.example": newDoc("", "", "", "形態素 解析"),
	}}
	analyzer := NewAnalyzer(src, &fakeTokenizer{})

	got := NewBatchProcessor(analyzer).Run(context.Background(), []string{
		"https://a.example",
		"https://missing.example",
		"https://b.example",
	})

	if !got.Success || got.TotalURLs != 3 || got.SuccessCount != 2 || got.ErrorCount != 1 {
		t.Errorf("unexpected counts %+v", got)
	}
	if got.Errors[0].URL != "https://missing.example" || !strings.HasPrefix(got.Errors[0].Error, ErrFetchFailed.Error()) {
		t.Errorf("unexpected errors %v", got.Errors)
	}

	for _, r := range got.Results {
		if len(r.Tokens) != r.TokenCount {
			t.Errorf("%s: expected every token listed, got %d of %d", r.URL, len(r.Tokens), r.TokenCount)
		}
	}

	agg := got.AggregatedSummary
	if agg.TotalSites != 2 {
		t.Errorf("expected 2 sites, got %d", agg.TotalSites)
	}
	if len(agg.TopWords) == 0 {
		t.Fatal("expected aggregated words")
	}
	top := agg.TopWords[0]
	if top.Word != "解析" || top.Count != 2 || top.SiteCount != 2 || top.SitePercentage != 100.0 {
		t.Errorf("expected 解析 on both pages, got %+v", top)
	}
}

func TestBatchProcessorRunListsEveryToken(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("語 ", 150))
	src := &fakeSource{docs: map[string]*fetcher.Document{
		"https://a.example": newDoc("", "", "", long),
		"https://b.example": newDoc("", "", "", long),
	}}
	analyzer := NewAnalyzer(src, &fakeTokenizer{})

	single, err := analyzer.AnalyzePage(context.Background(), "https://a.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.TokenCount != 150 || len(single.Tokens) != model.DefaultDisplayTokenLimit {
		t.Errorf("single page: expected 100 of 150 tokens, got %d of %d", len(single.Tokens), single.TokenCount)
	}

	got := NewBatchProcessor(analyzer, WithConcurrency(2)).Run(context.Background(), []string{
		"https://a.example",
		"https://b.example",
	})
	if got.SuccessCount != 2 {
		t.Fatalf("expected 2 successes, got %+v", got.Errors)
	}
	for _, r := range got.Results {
		if r.TokenCount != 150 || len(r.Tokens) != r.TokenCount {
			t.Errorf("%s: expected 150 listed tokens, got %d of %d", r.URL, len(r.Tokens), r.TokenCount)
		}
	}
}
