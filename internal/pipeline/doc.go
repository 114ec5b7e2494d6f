// Package pipeline analyzes pages by running a sequence of steps.
//
// A page goes through fetching, optional language detection, tokenization
// of every region, and summarization. Each step reads what earlier steps
// stored in a model.Analysis and adds its own output; the pipeline stops
// at the first failing step.
//
// Analyzer assembles the standard steps for one page. BatchProcessor folds
// many URLs into successful results and per-URL errors, optionally
// analyzing several pages at once with errgroup.
package pipeline
