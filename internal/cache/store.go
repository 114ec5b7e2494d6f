package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wordscope/internal/fetcher"
)

// dbFileName is the name of the cache database file.
const dbFileName = "pages.db"

// Store is a page text cache backed by a SQLite file.
type Store struct {
	db     *sql.DB
	dbPath string
	ttl    time.Duration
	now    func() time.Time
}

// Options configures a Store.
type Options struct {
	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// TTL is how long an entry stays valid. Zero or negative keeps entries forever.
	TTL time.Duration
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		EnableWAL: true,
		TTL:       time.Hour,
	}
}

// Open opens or creates the cache database in dir and removes the entries
// that expired since it was last used.
func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	dbPath := filepath.Join(dir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
		ttl:    opts.TTL,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := s.Purge(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		h1 TEXT NOT NULL DEFAULT '',
		h2 TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the cached document for url. A missing or expired entry
// returns nil without an error.
func (s *Store) Get(ctx context.Context, url string) (*fetcher.Document, error) {
	query := `
	SELECT url, title, h1, h2, body, fetched_at
	FROM pages
	WHERE url = ?
	`

	var doc fetcher.Document
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx, query, url).Scan(
		&doc.URL,
		&doc.Title,
		&doc.H1,
		&doc.H2,
		&doc.Body,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	doc.FetchedAt = time.Unix(0, fetchedAt)
	if s.expired(doc.FetchedAt) {
		return nil, nil
	}
	return &doc, nil
}

// Put stores or replaces the cached document of doc.URL.
func (s *Store) Put(ctx context.Context, doc *fetcher.Document) error {
	query := `
	INSERT INTO pages (url, title, h1, h2, body, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		title = excluded.title,
		h1 = excluded.h1,
		h2 = excluded.h2,
		body = excluded.body,
		fetched_at = excluded.fetched_at
	`

	fetchedAt := doc.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = s.now()
	}
	if _, err := s.db.ExecContext(ctx, query,
		doc.URL,
		doc.Title,
		doc.H1,
		doc.H2,
		doc.Body,
		fetchedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to store page: %w", err)
	}
	return nil
}

// Purge deletes every expired entry and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UnixNano()

	result, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

// RunPurger purges expired entries every interval until ctx is done.
// A non-positive interval or a store without TTL returns immediately.
func (s *Store) RunPurger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Purge(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("cache purge failed", "error", err)
				}
				continue
			}
			if removed > 0 {
				logger.Debug("purged expired cache entries", "removed", removed)
			}
		}
	}
}

// Count returns the number of stored entries, expired ones included.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached pages: %w", err)
	}
	return n, nil
}

func (s *Store) expired(fetchedAt time.Time) bool {
	return s.ttl > 0 && s.now().Sub(fetchedAt) > s.ttl
}
