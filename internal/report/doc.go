// Package report writes page and batch analysis results for the CLI.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter and FullJSONWriter: JSON output for tool integration
//   - MarkdownWriter: Markdown tables for documentation and sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably.
package report
