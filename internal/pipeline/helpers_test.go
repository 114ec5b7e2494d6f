package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/wordscope/internal/fetcher"
	"github.com/nao1215/wordscope/internal/model"
)

// fakeSource serves documents from a map. Unknown URLs fail.
type fakeSource struct {
	docs map[string]*fetcher.Document
}

func (f *fakeSource) Fetch(_ context.Context, url string) (*fetcher.Document, error) {
	doc, ok := f.docs[url]
	if !ok {
		return nil, fetcher.ErrUnexpectedStatus
	}
	copied := *doc
	copied.URL = url
	return &copied, nil
}

// particles are the words the fake tokenizer tags as 助詞.
var particles = map[string]bool{"が": true, "の": true, "は": true, "を": true}

// fakeTokenizer splits text on spaces. Particles become 助詞, everything
// else 名詞.
type fakeTokenizer struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeTokenizer) Tokenize(_ context.Context, text string) ([]model.Token, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	var tokens []model.Token
	for _, w := range strings.Fields(text) {
		pos := model.NounPOS
		if particles[w] {
			pos = "助詞"
		}
		tokens = append(tokens, model.Token{Surface: w, POS: pos})
	}
	return tokens, nil
}

func (f *fakeTokenizer) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

// fakeDetector reports a fixed language.
type fakeDetector struct {
	lang string
}

func (f fakeDetector) Detect(text string) (string, bool) {
	if text == "" || f.lang == "" {
		return "", false
	}
	return f.lang, true
}

// fixedTime is the fetch time of every fake document.
var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newDoc(title, h1, h2, body string) *fetcher.Document {
	return &fetcher.Document{Title: title, H1: h1, H2: h2, Body: body, FetchedAt: fixedTime}
}
