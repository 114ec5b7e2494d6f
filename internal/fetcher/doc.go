// Package fetcher retrieves web pages and extracts the cleaned text of
// their title, first- and second-level headings, and body.
//
// Script, style, and frame content is discarded before any region is read.
// Navigation chrome (nav, header, footer, aside) is additionally discarded
// before the body text is read. Responses are converted to UTF-8 from the
// charset declared by the server or the document, so Shift_JIS and EUC-JP
// pages are handled.
//
// A HostPolicy can be attached to honor robots.txt and to space out
// requests to the same host. NewHTTPClient builds a client that tunnels
// every connection through a SOCKS5 proxy.
package fetcher
