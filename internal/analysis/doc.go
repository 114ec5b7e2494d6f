// Package analysis turns token sequences into ranked word-frequency reports.
//
// Summarize computes the statistics of a single text: part-of-speech counts
// and the ten most frequent nouns longer than one character. Aggregate
// merges the results of several pages, ranking words first by the number of
// pages they appear on and then by total occurrences, both overall and for
// each region (title, h1, h2, body).
//
// Every function in this package is pure and safe for concurrent use.
//
// # Regional aggregation
//
// The overall ranking is derived from every body token of every page, while
// each regional ranking only sees the top ten words a page produced for that
// region. A word that is common across pages but never reaches a single
// page's regional top ten does not appear in the regional aggregate.
package analysis
