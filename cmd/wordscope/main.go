// Package main provides the entry point for the wordscope CLI.
//
// wordscope fetches web pages, tokenizes their Japanese text into
// morphemes and reports word frequencies per page and across pages.
//
// Usage:
//
//	wordscope serve
//	wordscope analyze <url> [url...]
//
// See --help for all available options.
package main

// main is the entry point for wordscope.
func main() {
	Execute()
}
