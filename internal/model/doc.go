// Package model defines the data structures shared by the fetch, tokenize,
// summarize and aggregate stages of wordscope.
//
// This package contains the following main types:
//   - Token: one morpheme produced by the tokenizer
//   - TextSummary: part-of-speech counts and top nouns of a single text
//   - PageResult: everything computed for one fetched page
//   - AggregatedSummary: noun frequencies merged across pages
//   - BatchResult: the multi-URL response envelope
//
// The types are request-scoped and serialize to the JSON shapes returned by
// the HTTP API.
package model
