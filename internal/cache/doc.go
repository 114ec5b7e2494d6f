// Package cache provides a SQLite-backed cache of fetched page texts.
//
// The cache holds the cleaned region texts of a page keyed by URL, never
// analysis results. Entries older than the configured TTL are treated as
// missing. CachedSource puts the cache in front of a fetcher and collapses
// concurrent misses for the same URL into one download.
package cache
