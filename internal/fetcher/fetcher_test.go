package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>テスト</title></head><body><h1>見出し</h1><p>本文です</p></body></html>`))
	})
	mux.HandleFunc("/sjis", func(w http.ResponseWriter, _ *http.Request) {
		body, err := japanese.ShiftJIS.NewEncoder().String(`<html><head><title>日本語</title></head><body><p>シフトJIS</p></body></html>`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"a":1}`))
	})
	mux.HandleFunc("/untyped", func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><body><p>推測</p></body></html>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	mux.HandleFunc("/long", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><p>あいう</p>` + strings.Repeat("<p>えお</p>", 1000) + `</body></html>`))
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>` + r.UserAgent() + `</body></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("extracts region texts", func(t *testing.T) {
		t.Parallel()

		doc, err := New().Fetch(context.Background(), srv.URL+"/page")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.URL != srv.URL+"/page" {
			t.Errorf("expected URL to be kept, got %s", doc.URL)
		}
		if doc.Title != "テスト" || doc.H1 != "見出し" || doc.Body != "見出し 本文です" {
			t.Errorf("unexpected document: %+v", doc)
		}
		if doc.FetchedAt.IsZero() {
			t.Error("expected FetchedAt to be set")
		}
		texts := doc.Texts()
		if texts.Body != doc.Body || texts.Title != doc.Title {
			t.Errorf("expected texts to mirror the document, got %+v", texts)
		}
	})

	t.Run("converts Shift_JIS to UTF-8", func(t *testing.T) {
		t.Parallel()

		doc, err := New().Fetch(context.Background(), srv.URL+"/sjis")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Title != "日本語" || doc.Body != "シフトJIS" {
			t.Errorf("unexpected document: %+v", doc)
		}
	})

	t.Run("sniffs a missing content type", func(t *testing.T) {
		t.Parallel()

		doc, err := New().Fetch(context.Background(), srv.URL+"/untyped")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Body != "推測" {
			t.Errorf("expected body 推測, got %q", doc.Body)
		}
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		doc, err := New(WithUserAgent("wordscope-test")).Fetch(context.Background(), srv.URL+"/ua")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Body != "wordscope-test" {
			t.Errorf("expected user agent in body, got %q", doc.Body)
		}
	})

	t.Run("truncates the body at the size limit", func(t *testing.T) {
		t.Parallel()

		doc, err := New(WithMaxBodySize(64)).Fetch(context.Background(), srv.URL+"/long")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(doc.Body, "あいう") {
			t.Errorf("expected body to start with あいう, got %q", doc.Body)
		}
		if strings.Count(doc.Body, "えお") >= 1000 {
			t.Error("expected the body to be truncated")
		}
	})

	errorTests := []struct {
		name    string
		url     string
		opts    []Option
		wantErr error
	}{
		{name: "non-2xx status", url: srv.URL + "/missing", wantErr: ErrUnexpectedStatus},
		{name: "non-HTML content", url: srv.URL + "/json", wantErr: ErrNotHTML},
		{name: "unsupported scheme", url: "ftp://example.com", wantErr: ErrInvalidURL},
		{name: "relative URL", url: "/page", wantErr: ErrInvalidURL},
		{
			name:    "timeout",
			url:     srv.URL + "/slow",
			opts:    []Option{WithTimeout(50 * time.Millisecond)},
			wantErr: context.DeadlineExceeded,
		},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...).Fetch(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{name: "html with charset", contentType: "text/html; charset=euc-jp", want: true},
		{name: "xhtml", contentType: "application/xhtml+xml", want: true},
		{name: "plain text", contentType: "text/plain", want: false},
		{name: "malformed header", contentType: ";;", want: false},
		{name: "sniffed html", body: "<html><body></body></html>", want: true},
		{name: "sniffed binary", body: "\x89PNG\r\n\x1a\n", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isHTML(tt.contentType, []byte(tt.body)); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
