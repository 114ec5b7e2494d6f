package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nao1215/wordscope/internal/model"
	"github.com/nao1215/wordscope/internal/pipeline"
)

const (
	// DefaultMaxBatchSize is the maximum number of URLs of one batch request.
	DefaultMaxBatchSize = 20

	// DefaultMaxBodyBytes caps the size of request bodies.
	DefaultMaxBodyBytes int64 = 1 << 20

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// BatchRunner analyzes a list of URLs and aggregates the results.
type BatchRunner interface {
	Run(ctx context.Context, urls []string) *model.BatchResult
}

// Server serves the analysis API.
type Server struct {
	analyzer        pipeline.PageAnalyzer
	batch           BatchRunner
	maxBatchSize    int
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	metrics         *Metrics
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBatchSize sets the maximum number of URLs of one batch request.
func WithMaxBatchSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a Server using analyzer for single pages and batch for lists.
func New(analyzer pipeline.PageAnalyzer, batch BatchRunner, opts ...Option) *Server {
	s := &Server{
		analyzer:        analyzer,
		batch:           batch,
		maxBatchSize:    DefaultMaxBatchSize,
		maxBodyBytes:    DefaultMaxBodyBytes,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// Handler returns the HTTP handler with every route and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "/api/analyze", http.MethodPost, s.handleAnalyze)
	s.route(mux, "/api/analyze-multiple", http.MethodPost, s.handleAnalyzeMultiple)
	s.route(mux, "/healthz", http.MethodGet, s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())

	var h http.Handler = mux
	h = withRecover(s.logger, h)
	h = withAccessLog(s.logger, h)
	h = withRequestID(h)
	return h
}

// route registers handler for path, answering other methods with 405.
func (s *Server) route(mux *http.ServeMux, path, method string, handler http.HandlerFunc) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			writeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
			return
		}
		handler(w, r)
	})
	mux.Handle(path, withMetrics(s.metrics, path, h))
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
